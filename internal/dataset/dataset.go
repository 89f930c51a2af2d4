// Package dataset builds batch prompts from audio files on disk.
package dataset

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ewhitt/promptlab/internal/prompt"
)

// Load globs WAV files matching pattern and builds a batch prompt. Each
// file pairs with a sidecar .txt transcript when one exists, otherwise with
// userPrompt. A non-empty systemPrompt applies to every entry.
func Load(pattern, userPrompt, systemPrompt string) (prompt.BatchPrompt, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return prompt.BatchPrompt{}, fmt.Errorf("globbing %s: %w", pattern, err)
	}

	var paths []string
	for _, m := range matches {
		if strings.HasSuffix(strings.ToLower(m), ".wav") {
			paths = append(paths, m)
		}
	}
	if len(paths) == 0 {
		return prompt.BatchPrompt{}, fmt.Errorf("no wav files match %s", pattern)
	}
	sort.Strings(paths)

	audioInputs := make([]*prompt.AudioInput, len(paths))
	userPrompts := make([]string, len(paths))
	var systemPrompts []*string
	if systemPrompt != "" {
		systemPrompts = make([]*string, len(paths))
	}

	for i, path := range paths {
		audioInputs[i] = &prompt.AudioInput{Path: path}
		userPrompts[i] = userPrompt
		if text, ok := sidecarTranscript(path); ok {
			userPrompts[i] = text
		}
		if systemPrompts != nil {
			s := systemPrompt
			systemPrompts[i] = &s
		}
	}

	return prompt.FromALMBatchInput(audioInputs, userPrompts, systemPrompts)
}

// sidecarTranscript reads path with its extension swapped for .txt.
func sidecarTranscript(wavPath string) (string, bool) {
	txtPath := strings.TrimSuffix(wavPath, ".wav") + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}
