package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/prompt"
)

var (
	runFile     string
	runTemplate string
	runUser     string
	runSystem   string
	runAudio    string
	runRaw      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single prompt against the configured model",
	Long: `Sends one prompt to the configured provider and prints the response.
The prompt comes from a block-format file (--file), a YAML template
(--template), or --user/--system/--audio flags.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "prompt file in block format")
	runCmd.Flags().StringVarP(&runTemplate, "template", "t", "", "prompt template YAML file")
	runCmd.Flags().StringVarP(&runUser, "user", "u", "", "user message text")
	runCmd.Flags().StringVarP(&runSystem, "system", "s", "", "system message text")
	runCmd.Flags().StringVarP(&runAudio, "audio", "a", "", "audio WAV file to attach")
	runCmd.Flags().BoolVar(&runRaw, "raw", false, "print the raw response without styling")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := buildRunPrompt()
	if err != nil {
		return err
	}

	exp := cfg.Experiment()
	if err := exp.Setup("run"); err != nil {
		return fmt.Errorf("setting up experiment: %w", err)
	}

	client, err := exp.BuildClient(string(cfg.Provider), cfg.Model)
	if err != nil {
		return fmt.Errorf("building client: %w", err)
	}

	resp, err := client.Complete(ctx, llmRequest(cfg, p))
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}

	if runRaw {
		fmt.Println(resp.Content)
	} else {
		p.PrettyPrint(os.Stdout, []prompt.Completion{{ModelID: resp.Model, Content: resp.Content}})
	}

	if resp.Cached {
		fmt.Fprintln(os.Stderr, "(served from cache)")
	}

	return exp.LogAPICost(client, map[string]string{
		"command": "run",
		"model":   cfg.Model,
	})
}

// buildRunPrompt assembles the prompt from whichever input flags were given.
// --file and --template are exclusive; flag messages extend either.
func buildRunPrompt() (prompt.Prompt, error) {
	if runFile != "" && runTemplate != "" {
		return prompt.Prompt{}, fmt.Errorf("--file and --template are mutually exclusive")
	}

	var p prompt.Prompt
	switch {
	case runFile != "":
		data, err := os.ReadFile(runFile)
		if err != nil {
			return prompt.Prompt{}, fmt.Errorf("reading prompt file: %w", err)
		}
		p, err = prompt.ParseBlocks(string(data), "", true)
		if err != nil {
			return prompt.Prompt{}, fmt.Errorf("parsing prompt file: %w", err)
		}
	case runTemplate != "":
		t, err := prompt.LoadTemplate(runTemplate)
		if err != nil {
			return prompt.Prompt{}, err
		}
		p = t.Prompt()
	default:
		if runUser == "" && runAudio == "" {
			return prompt.Prompt{}, fmt.Errorf("nothing to send: use --file, --template, or --user/--audio")
		}
		var audioIn *prompt.AudioInput
		if runAudio != "" {
			audioIn = &prompt.AudioInput{Path: runAudio}
		}
		var user, system *string
		if runUser != "" {
			user = &runUser
		}
		if runSystem != "" {
			system = &runSystem
		}
		return prompt.FromALMInput(audioIn, user, system)
	}

	if runAudio != "" {
		p = prompt.New(prompt.ChatMessage{Role: prompt.RoleAudio, Content: runAudio}).Append(p)
	}
	if runSystem != "" {
		p = prompt.New(prompt.ChatMessage{Role: prompt.RoleSystem, Content: runSystem}).Append(p)
	}
	if runUser != "" {
		p = p.AddUserMessage(runUser)
	}
	return p, nil
}
