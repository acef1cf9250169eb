package commands

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/telemetry"
)

type askFlags struct {
	mode              string
	chatMode          string
	friendName        string
	friendDescription string
	spaceTitle        string
	spaceDescription  string
	imagePath         string
	historyPath       string
	noSearch          bool
	noImages          bool
}

func (a *App) newAskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question",
		Long: `Answer a question with the configured model.

Current-events questions are augmented with live web results and visual
requests may receive a generated image.

Examples:
  perle ask "What is the capital of France?"
  perle ask --model claude-4.5 --premium --mode Research "Explain CRISPR"
  perle ask --chat-mode ai_friend --friend-name Sam "I had a long day"
  perle ask --image chart.png "What does this chart show?"
  perle ask --json "latest news on fusion power"`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runAsk,
	}

	f := &a.askOpts
	cmd.Flags().StringVar(&f.mode, "mode", string(answer.ModeAsk), "answer mode (Ask, Research, Summarize, Compare)")
	cmd.Flags().StringVar(&f.chatMode, "chat-mode", string(answer.ChatNormal), "persona (normal, ai_friend, ai_psychologist, space)")
	cmd.Flags().StringVar(&f.friendName, "friend-name", "", "persona name for ai_friend")
	cmd.Flags().StringVar(&f.friendDescription, "friend-description", "", "persona description for ai_friend")
	cmd.Flags().StringVar(&f.spaceTitle, "space-title", "", "space title for the space chat mode")
	cmd.Flags().StringVar(&f.spaceDescription, "space-description", "", "space description for the space chat mode")
	cmd.Flags().StringVar(&f.imagePath, "image", "", "attach an image file")
	cmd.Flags().StringVar(&f.historyPath, "history", "", "JSON file with prior turns ([{\"role\":\"user\",\"content\":\"...\"}])")
	cmd.Flags().BoolVar(&f.noSearch, "no-search", false, "disable web search")
	cmd.Flags().BoolVar(&f.noImages, "no-images", false, "disable image generation")

	return cmd
}

func (a *App) runAsk(cmd *cobra.Command, args []string) error {
	req, err := a.askRequest(args)
	if err != nil {
		return a.handleAnswerError(err)
	}

	log := a.logger()
	eng := a.buildEngine(log, telemetry.Fanout{telemetry.NewLogHook(log)},
		a.cfg.Search.Enabled && !a.askOpts.noSearch,
		a.cfg.Images.Enabled && !a.askOpts.noImages)

	res, err := eng.Generate(cmd.Context(), req)
	if err != nil {
		return a.handleAnswerError(err)
	}

	if a.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	a.printResult(res)
	return nil
}

// askRequest converts arguments and flags into an engine request.
func (a *App) askRequest(args []string) (answer.Request, error) {
	f := a.askOpts
	mode, err := parseMode(f.mode)
	if err != nil {
		return answer.Request{}, err
	}
	chat := answer.ChatMode(strings.ToLower(f.chatMode))
	if !chat.Valid() {
		return answer.Request{}, fmt.Errorf("%w: unknown chat mode %q", core.ErrBadRequest, f.chatMode)
	}

	req := answer.Request{
		Query:             strings.Join(args, " "),
		Mode:              mode,
		Model:             core.LLMModel(a.model),
		Premium:           a.premium,
		ChatMode:          chat,
		FriendName:        f.friendName,
		FriendDescription: f.friendDescription,
		SpaceTitle:        f.spaceTitle,
		SpaceDescription:  f.spaceDescription,
	}

	if f.imagePath != "" {
		if req.ImageDataURL, err = readImage(f.imagePath); err != nil {
			return answer.Request{}, err
		}
	}
	if f.historyPath != "" {
		if req.History, err = readHistory(f.historyPath); err != nil {
			return answer.Request{}, err
		}
	}
	return req, nil
}

func parseMode(s string) (answer.Mode, error) {
	for _, m := range []answer.Mode{answer.ModeAsk, answer.ModeResearch, answer.ModeSummarize, answer.ModeCompare} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q", core.ErrBadRequest, s)
}

// readImage loads path as a base64 data URL.
func readImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: image: %v", core.ErrBadRequest, err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", core.ErrBadRequest, path, mime)
	}
	return core.DataURL{MimeType: mime, Data: base64.StdEncoding.EncodeToString(data)}.String(), nil
}

func readHistory(path string) ([]answer.HistoryMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: history: %v", core.ErrBadRequest, err)
	}
	var history []answer.HistoryMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("%w: history: %v", core.ErrBadRequest, err)
	}
	for i, m := range history {
		if m.Role != answer.HistoryUser && m.Role != answer.HistoryAssistant {
			return nil, fmt.Errorf("%w: history[%d]: unknown role %q", core.ErrBadRequest, i, m.Role)
		}
	}
	return history, nil
}

func (a *App) printResult(res *answer.Result) {
	for _, c := range res.Chunks {
		fmt.Fprintln(a.stdout, c.Text)
	}

	if len(res.Sources) > 0 {
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Sources:")
		for _, s := range res.Sources {
			fmt.Fprintf(a.stdout, "  [%s] %s\n", s.ID, s.Title)
			if s.URL != "" {
				fmt.Fprintf(a.stdout, "      %s\n", s.URL)
			}
		}
	}

	if len(res.Images) > 0 {
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Images:")
		for _, img := range res.Images {
			link := img.URL
			if strings.HasPrefix(link, "data:") {
				link = "inline image, use --json to retrieve"
			}
			fmt.Fprintf(a.stdout, "  %dx%d %s\n", img.Width, img.Height, link)
		}
	}
}
