package search

import (
	"regexp"
	"strings"
)

// Words that signal the asker wants up-to-date facts. Common misspellings are
// listed next to their correct forms.
var currentIndicators = []string{
	// time-based indicators
	"latest", "newest", "current", "recent", "today", "now", "this year", "this month", "this week",
	"last year", "last month", "last week", "yesterday", "right now", "at the moment", "2026", "2025", "2024",
	"2023", "in 2026", "in 2025", "in 2024",
	// misspellings
	"latst", "lates", "laest", "newst", "neest", "curent", "currnt", "curren", "recnt", "resent", "todya",
	"toady", "ysterday", "yestrday",
	// status/release indicators
	"what is new", "what's new", "whats new", "new release", "just released", "newly released",
	"just announced", "recently announced", "newly launched", "just launched", "upcoming", "coming soon",
	"future", "next", "next generation", "next gen",
	// misspellings
	"wat is new", "whts new", "wat new", "relase", "releae", "relesed", "anounced", "annnounced", "launced",
	"launchd", "upcomng", "upcomig", "comng soon", "futre", "nxt",
	// quality/ranking indicators
	"best", "top", "leading", "flagship", "premium", "most popular", "trending", "top rated", "highest rated",
	"best rated", "most recommended", "number one", "no 1", "#1", "top 10", "top 5", "best of",
	// misspellings
	"bst", "bset", "bes", "leadng", "leadin", "flagshp", "premiun", "premum", "populr", "poplar", "trendng",
	"trendig", "trening",
	// technology/innovation indicators
	"modern", "contemporary", "state of the art", "cutting edge", "most advanced", "innovative",
	"breakthrough", "revolutionary", "game changing",
	// misspellings
	"modrn", "modren", "advnced", "advaned", "inovative", "inovatve", "revolutionay", "revolitionay",
	// update/change indicators
	"update", "updated", "upgrade", "upgraded", "improved", "enhanced", "changed", "modified", "revised",
	"new version", "version",
	// misspellings
	"updte", "updtd", "upgade", "upgrad", "improvd", "imroved", "enhaced", "enhaned", "versn", "vrsion",
	"verion",
	// comparison indicators
	"vs", "versus", "compare", "comparison", "better than", "faster than", "which is better", "should i buy",
	"worth it", "worth buying",
	// misspellings
	"compar", "compre", "comparisn", "beter than", "betr", "fastr", "fastre",
	// availability/market indicators
	"available", "in stock", "buy", "purchase", "order", "pre order", "preorder", "where to buy", "how much",
	"price", "cost", "priced at", "costs", "on sale", "discount", "deal", "offer", "promotion",
	// misspellings
	"avalable", "availble", "avilable", "purchse", "purchas", "puchase", "ordr", "preordr", "pric", "prce",
	"cst", "discout", "disount",
	// status indicators
	"is out", "has been released", "released", "launch", "launched", "debut", "reveal", "revealed", "unveil",
	"unveiled", "announce", "announced",
	// misspellings
	"launh", "lauch", "debue", "revea", "unvei", "anounce",
}

// Topics whose facts go stale quickly.
var currentTopics = []string{
	// electronics & technology
	"phone", "mobile", "smartphone", "iphone", "android", "samsung", "google pixel", "processor", "cpu", "gpu",
	"chipset", "snapdragon", "apple silicon", "intel", "amd", "nvidia", "laptop", "computer", "pc", "mac",
	"macbook", "tablet", "ipad", "gadget", "device", "tech", "technology", "electronics", "smartwatch",
	"watch", "wearable", "fitness tracker", "airpods", "earbuds", "headphones", "camera", "dslr", "mirrorless",
	"lens", "photography", "tv", "television", "smart tv", "oled", "qled", "monitor", "display", "screen",
	"speaker", "soundbar", "audio", "bluetooth", "router", "wifi", "modem", "internet", "broadband", "5g",
	"6g", "drone", "robot", "smart home", "alexa", "google home", "siri",
	// misspellings
	"phne", "phn", "fone", "fon", "phon", "pohne", "ophne", "mobil", "moblie", "moble", "mobiel", "smartphne",
	"smartfone", "smarthone", "smrtphone", "iphne", "ipone", "ifone", "iphon", "andriod", "androd", "androyd",
	"androi", "samsng", "samsun", "samung", "gogle", "googl", "gooogle", "procesor", "processer", "procesoor",
	"prcessor", "proccessor", "processr", "procesro", "proccesor", "chipst", "chpset", "chiset", "snapdragn",
	"snapdrgn", "snapdrgon", "lapto", "laptpo", "laptp", "compter", "computr", "comuter", "compuer", "macbok",
	"macboo", "macbk", "tabl", "tblet", "tablte", "ipa", "ipd", "gadgt", "gadet", "devic", "devis", "devce",
	"tecnology", "technolgy", "technlogy", "tecnlogy", "electronis", "electrnics", "eletronics", "smartwach",
	"smrtwatch", "watc", "wach", "wereable", "wearble", "airopods", "airpod", "earbud", "earbds", "headphne",
	"headfone", "headpone", "camra", "cemera", "cmera", "photograpy", "fotography", "photografy", "televison",
	"televisin", "telivision", "monitr", "moniter", "displya", "disply", "scren", "scrn", "speakr", "speker",
	"soundbr", "auido", "audo", "bluetoth", "blutooth", "bluethooth", "ruter", "routr", "wif", "wi-fi",
	"intrnet", "intenet", "brodband", "broadbnd",
	// vehicles & transportation
	"car", "vehicle", "automobile", "sedan", "suv", "truck", "van", "electric vehicle", "ev", "electric car",
	"hybrid", "tesla", "bmw", "mercedes", "toyota", "bike", "motorcycle", "scooter", "cycle", "bicycle", "bus",
	"train", "metro", "flight", "airplane", "airline",
	// misspellings
	"vehicl", "vehical", "vehcle", "automibile", "automble", "sedn", "teslaa", "tesle", "toyot", "motorcyle",
	"motocycle", "scootr", "scoote", "bycle", "bicyle", "airpalne", "airplan",
	// software & apps
	"app", "application", "software", "program", "tool", "platform", "ios app", "android app", "windows",
	"macos", "linux", "browser", "chrome", "safari", "firefox", "edge", "game", "video game", "gaming",
	"playstation", "xbox", "nintendo", "steam", "social media", "facebook", "instagram", "twitter", "tiktok",
	"youtube",
	// misspellings
	"aplication", "aplicaton", "aap", "sofware", "softwar", "softwre", "progam", "prgram", "windos", "wndows",
	"winows", "maos", "mac os", "linx", "lnux", "browsr", "broser", "chromm", "chrom", "safri", "safai",
	"firefo", "firefx", "gam", "gme", "gamng", "gmng", "playstaton", "playstaion", "xbx", "nintedo", "nintndo",
	"facbook", "facebok", "fb", "instgram", "instagra", "insta", "twitr", "twiter", "tiktk", "tiktoc",
	"youtub", "youtbe", "ytube",
	// ai & machine learning
	"ai", "artificial intelligence", "machine learning", "ml", "deep learning", "chatgpt", "gpt", "claude",
	"gemini", "llm", "language model", "chatbot", "ai model", "ai tool",
	// misspellings
	"artificail intelligence", "artifical intelligence", "machne learning", "machin learning", "chatgp",
	"chatgt", "chat gpt", "claud", "claue", "gemni", "gemin", "gemeni", "chatbt", "chat bot",
	// business & finance
	"stock", "share", "market", "stock market", "nasdaq", "dow jones", "crypto", "cryptocurrency", "bitcoin",
	"ethereum", "blockchain", "company", "startup", "business", "ipo", "merger", "acquisition", "salary",
	"wage", "job", "employment", "hiring", "layoff", "economy", "recession", "inflation", "gdp",
	"interest rate",
	// misspellings
	"stok", "stck", "shar", "markt", "mrket", "nasdq", "nasda", "cryto", "cyrpto", "cryptocurency", "bitcon",
	"bitconi", "bitcion", "etherium", "etherum", "blockchan", "compny", "copany", "startap", "busines",
	"busness", "employmnt", "emploment", "econmy", "econoy", "recesion", "inflaton", "infation",
	// entertainment & media
	"movie", "film", "cinema", "netflix", "disney", "amazon prime", "streaming", "series", "tv show", "show",
	"episode", "season", "music", "song", "album", "artist", "singer", "band", "concert", "spotify", "book",
	"novel", "author", "bestseller", "kindle", "celebrity", "actor", "actress", "star",
	// misspellings
	"movi", "moive", "movei", "flim", "cinem", "netflx", "netlix", "disny", "diney", "amazn prime", "streamng",
	"streming", "serie", "sries", "episod", "epsode", "seaon", "seasn", "musi", "musci", "sng", "albm",
	"ablum", "artst", "singr", "concrt", "concer", "spotif", "spotyfi", "bok", "novl", "authr", "kindl",
	"kinle", "celebrty", "celebity", "actr", "actres",
	// news & events
	"news", "breaking news", "headlines", "story", "event", "announcement", "conference", "summit",
	"convention", "election", "vote", "politics", "government", "president", "prime minister", "war",
	"conflict", "peace", "treaty", "agreement", "disaster", "earthquake", "hurricane", "flood", "fire",
	// misspellings
	"nws", "newz", "breakng news", "hedlines", "headlins", "stry", "storey", "evnt", "anouncement",
	"anncouncement", "conferenc", "sumit", "summitt", "conventon", "electon", "elction", "vot", "politcs",
	"politiks", "governmnt", "govrnment", "presiden", "presedent", "dister", "disastr", "earthqake",
	"eartquake", "huricane", "hurrican", "flod",
	// sports
	"sports", "sport", "match", "tournament", "championship", "football", "soccer", "cricket", "basketball",
	"baseball", "tennis", "olympics", "world cup", "fifa", "nba", "nfl", "ipl", "player", "team", "score",
	"result", "winner", "champion",
	// misspellings
	"sprt", "sprts", "mach", "mtch", "tournment", "tournamnt", "championshp", "champinship", "footbal",
	"fotball", "socer", "socr", "criket", "crcket", "basketbal", "baskeball", "basball", "tenis", "teniss",
	"olimpics", "olymics", "worldcup", "wrld cup", "plyr", "playr", "tem", "scor", "reslt", "winnr", "champon",
	// science & research
	"research", "study", "discovery", "breakthrough", "finding", "vaccine", "medicine", "drug", "treatment",
	"cure", "therapy", "disease", "virus", "covid", "pandemic", "epidemic", "space", "nasa", "spacex",
	"rocket", "satellite", "mars", "moon", "climate", "climate change", "global warming", "weather",
	"temperature",
	// misspellings
	"resarch", "reserch", "researh", "studie", "studdy", "discovry", "discvery", "breaktrough", "findng",
	"vacine", "vaccin", "vaccinne", "medicne", "medcine", "treatmnt", "treatement", "ther", "theropy",
	"diseas", "desease", "vrus", "viris", "covd", "cov19", "pandmic", "pandemc", "epidmic", "spce", "nas",
	"spacx", "roket", "satelite", "satllite", "mrs", "mon", "wether", "wheather", "temperture", "temprature",
	// education & learning
	"university", "college", "school", "admission", "exam", "test", "course", "degree", "certification",
	"online course",
	// misspellings
	"univeristy", "univrsity", "univerity", "colege", "collge", "scool", "shool", "admision", "admissn", "exm",
	"tst", "corse", "cours", "degre", "certifcation", "certificaton", "onlin course",
	// real estate & travel
	"property", "real estate", "house", "apartment", "rent", "mortgage", "hotel", "resort", "travel",
	"tourism", "vacation", "trip", "destination", "visa", "passport", "flight ticket",
	// misspellings
	"proprty", "propety", "realestate", "hose", "hous", "apartmnt", "apartement", "rnt", "mortage", "morgage",
	"hotl", "hotle", "resrt", "travl", "trvel", "torism", "turism", "vacaton", "vacaion", "trp", "destinaton",
	"destiation", "vis", "viza", "pasport", "passprt", "flght ticket",
	// food & restaurant
	"restaurant", "cafe", "food", "cuisine", "recipe", "menu",
	// misspellings
	"restraunt", "resturant", "restarant", "caf", "caffe", "fod", "fud", "cusine", "cuisin", "recpe",
	"recipie", "mnu",
	// fashion & shopping
	"fashion", "clothing", "brand", "designer", "collection", "shopping", "store", "retail", "ecommerce",
	"amazon", "flipkart",
	// misspellings
	"fashon", "fasion", "clothng", "clohing", "brnd", "brandd", "desigr", "designr", "collecton", "colection",
	"shopng", "shoping", "stor", "retai", "ecomerce", "e-commerce", "amazn", "amzon", "flipcart", "flipkrt",
	// health & fitness
	"health", "fitness", "workout", "exercise", "gym", "yoga", "diet", "nutrition", "weight loss", "protein",
	"supplement",
	// misspellings
	"helth", "healt", "fitnes", "fitess", "workot", "worout", "exercis", "excercise", "gm", "yog", "yga",
	"deit", "nutition", "nutrion", "wieght loss", "weight los", "protien", "protin", "suplements", "supplment",
	// general time-sensitive topics
	"price", "cost", "rate", "value", "worth", "review", "rating", "opinion", "verdict", "specification",
	"specs", "feature", "detail", "release date", "launch date", "availability",
	// misspellings
	"pric", "prce", "cst", "cos", "rat", "valu", "wrth", "wort", "revie", "revew", "ratng", "opinon", "opnion",
	"verdct", "verdit", "specificaton", "specfication", "specifikation", "spec", "spcs", "feture", "featuer",
	"detil", "detai", "relase date", "releae date", "launh date", "launc date", "availablity", "availbility",
}

// Phrases that need live results on their own.
var strongIndicators = []string{
	"latest", "newest", "current", "recent", "today", "now", "this year", "this month", "2026", "2025",
	"in 2026", "in 2025", "what is new", "what's new", "whats new", "just released", "just announced",
	"just launched", "breaking news", "news today",
	// misspellings
	"latst", "lates", "laest", "newst", "neest", "curent", "currnt", "curren", "recnt", "resent", "todya",
	"toady", "wat is new", "whts new", "wat new", "jst released", "jus released", "jst announced",
	"jus announced", "jst launched", "jus launched", "breakng news", "breakin news", "nws today", "news tday",
}

// Topics that are always time-sensitive.
var alwaysCurrentTopics = []string{
	"news", "breaking news", "headlines", "weather", "temperature", "stock price", "crypto price",
	"bitcoin price", "score", "match result", "game result", "trending", "viral", "traffic", "flight status",
	// misspellings
	"nws", "newz", "breakng news", "hedlines", "headlins", "wether", "wheather", "temperture", "temprature",
	"stok price", "stock pric", "cryto price", "crypto pric", "bitcon price", "bitcoin pric", "scor",
	"mach result", "match reslt", "gam result", "game reslt", "trendng", "trendig", "virl", "virall", "trafic",
	"traffc", "flght status", "flight staus",
}

// Question shapes that need live results when they also name a current topic.
var currentQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`what.*(?:best|top|leading|fastest)`),
	regexp.MustCompile(`which.*(?:better|best|recommended)`),
	regexp.MustCompile(`how much.*(?:cost|price)`),
	regexp.MustCompile(`when.*(?:release|launch|available)`),
	regexp.MustCompile(`is.*(?:out|available|released)`),
	regexp.MustCompile(`has.*(?:released|launched|announced)`),
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// RequiresCurrentInfo reports whether query asks for information that may
// have changed since a model's training data was collected.
func RequiresCurrentInfo(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}

	hasIndicator := containsAny(q, currentIndicators)
	hasTopic := containsAny(q, currentTopics)
	if hasIndicator && hasTopic {
		return true
	}

	if containsAny(q, strongIndicators) || containsAny(q, alwaysCurrentTopics) {
		return true
	}

	if hasTopic {
		for _, p := range currentQuestionPatterns {
			if p.MatchString(q) {
				return true
			}
		}
	}
	return false
}
