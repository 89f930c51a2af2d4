package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ewhitt/promptlab/internal/audio"
)

func TestParseRole(t *testing.T) {
	for _, name := range []string{"user", "system", "assistant", "audio", "image", "none"} {
		role, err := ParseRole(name)
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error: %v", name, err)
		}
		if string(role) != name {
			t.Errorf("ParseRole(%q) = %q", name, role)
		}
	}

	if _, err := ParseRole("robot"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestWithoutRole(t *testing.T) {
	msg := ChatMessage{Role: RoleUser, Content: "hello"}
	stripped := msg.WithoutRole()
	if stripped.Role != RoleNone || stripped.Content != "hello" {
		t.Errorf("WithoutRole() = %+v", stripped)
	}
	if msg.Role != RoleUser {
		t.Error("original message was mutated")
	}
}

func TestPromptString(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "be brief"},
		ChatMessage{Role: RoleUser, Content: "hello"},
	)
	want := "system: be brief\n\nuser: hello"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPromptStringNoneRole(t *testing.T) {
	p := New(ChatMessage{Role: RoleNone, Content: "raw continuation"})
	if got := p.String(); got != "raw continuation" {
		t.Errorf("String() = %q", got)
	}
}

func TestAppendAssociativity(t *testing.T) {
	a := New(ChatMessage{Role: RoleSystem, Content: "s"})
	b := New(ChatMessage{Role: RoleUser, Content: "u"})
	c := New(ChatMessage{Role: RoleAssistant, Content: "a"})

	left := a.Append(b).Append(c)
	right := a.Append(b.Append(c))

	if left.String() != right.String() {
		t.Errorf("append is not associative: %q vs %q", left.String(), right.String())
	}
	if len(left.Messages) != 3 {
		t.Errorf("expected 3 messages, got %d", len(left.Messages))
	}
	// Operands must be untouched.
	if len(a.Messages) != 1 || len(b.Messages) != 1 {
		t.Error("append mutated an operand")
	}
}

func TestAddMessageHelpers(t *testing.T) {
	p := New().AddUserMessage("q").AddAssistantMessage("a").AddAudioMessage("clip.wav")
	roles := []Role{RoleUser, RoleAssistant, RoleAudio}
	if len(p.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(p.Messages))
	}
	for i, want := range roles {
		if p.Messages[i].Role != want {
			t.Errorf("message %d role = %s, want %s", i, p.Messages[i].Role, want)
		}
	}
	if p.Messages[2].Content != "clip.wav" {
		t.Errorf("audio content = %q", p.Messages[2].Content)
	}
}

func TestFromALMInputOrder(t *testing.T) {
	user := "transcribe this"
	system := "you transcribe audio"
	p, err := FromALMInput(&AudioInput{Path: "clip.wav"}, &user, &system)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Role{RoleAudio, RoleSystem, RoleUser}
	if len(p.Messages) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(p.Messages))
	}
	for i, role := range want {
		if p.Messages[i].Role != role {
			t.Errorf("message %d role = %s, want %s", i, p.Messages[i].Role, role)
		}
	}
}

func TestFromALMInputEmptyAudioSkipped(t *testing.T) {
	user := "hi"
	p, err := FromALMInput(&AudioInput{}, &user, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Messages) != 1 || p.Messages[0].Role != RoleUser {
		t.Errorf("expected single user message, got %+v", p.Messages)
	}
}

func TestFromALMInputRequiresInput(t *testing.T) {
	if _, err := FromALMInput(nil, nil, nil); err == nil {
		t.Error("expected error when both audio and user prompt are missing")
	}
}

func TestBlockFormatRoundTrip(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "stay terse"},
		ChatMessage{Role: RoleUser, Content: "line one\nline two"},
		ChatMessage{Role: RoleAssistant, Content: "sure"},
	)

	parsed, err := ParseBlocks(p.BlockFormat(""), "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(parsed.Messages) != len(p.Messages) {
		t.Fatalf("expected %d messages, got %d", len(p.Messages), len(parsed.Messages))
	}
	for i := range p.Messages {
		if parsed.Messages[i] != p.Messages[i] {
			t.Errorf("message %d: got %+v, want %+v", i, parsed.Messages[i], p.Messages[i])
		}
	}
}

func TestParseBlocksBareText(t *testing.T) {
	p, err := ParseBlocks("  just a question  ", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(p.Messages))
	}
	if p.Messages[0].Role != RoleUser || p.Messages[0].Content != "just a question" {
		t.Errorf("got %+v", p.Messages[0])
	}
}

func TestParseBlocksCustomSep(t *testing.T) {
	text := "###system###\nbe helpful\n###user###\nhi"
	p, err := ParseBlocks(text, "###", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(p.Messages))
	}
	if p.Messages[0].Role != RoleSystem || p.Messages[1].Content != "hi" {
		t.Errorf("got %+v", p.Messages)
	}
}

func TestParseBlocksRejectsBadRole(t *testing.T) {
	text := "========robot========\nbeep"
	if _, err := ParseBlocks(text, "", false); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestParseBlocksRejectsMalformedBlock(t *testing.T) {
	text := "========user\nmissing closing delimiter"
	if _, err := ParseBlocks(text, "", false); err == nil {
		t.Error("expected error for malformed block")
	}
}

func TestOpenAIFormat(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "be brief"},
		ChatMessage{Role: RoleUser, Content: "hello"},
	)
	msgs, err := p.OpenAIFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Content != "hello" {
		t.Errorf("got %+v", msgs)
	}
}

func TestOpenAIFormatRejectsTrailingAssistant(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleUser, Content: "hi"},
		ChatMessage{Role: RoleAssistant, Content: "hello"},
	)
	if _, err := p.OpenAIFormat(); err == nil {
		t.Error("expected error for trailing assistant message")
	}
}

func TestOpenAIFormatRejectsNoneRole(t *testing.T) {
	p := New(ChatMessage{Role: RoleNone, Content: "raw"})
	if _, err := p.OpenAIFormat(); err == nil {
		t.Error("expected error for none-role message")
	}
}

func TestOpenAIImageFormatAggregatesParts(t *testing.T) {
	img := writeTempPNG(t)
	p := New(
		ChatMessage{Role: RoleSystem, Content: "describe images"},
		ChatMessage{Role: RoleImage, Content: img},
		ChatMessage{Role: RoleUser, Content: "what is this?"},
	)

	msgs, err := p.OpenAIFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected system entry plus one user entry, got %d", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Errorf("first entry role = %q", msgs[0].Role)
	}
	parts := msgs[1].MultiContent
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].ImageURL == nil || !strings.HasPrefix(parts[0].ImageURL.URL, "data:image/png;base64,") {
		t.Error("expected base64 data URL image part")
	}
	if parts[1].Text != "what is this?" {
		t.Errorf("text part = %q", parts[1].Text)
	}
}

func TestOpenAIImageFormatRejectsMisplacedSystem(t *testing.T) {
	img := writeTempPNG(t)
	p := New(
		ChatMessage{Role: RoleImage, Content: img},
		ChatMessage{Role: RoleSystem, Content: "late"},
	)
	if _, err := p.OpenAIFormat(); err == nil {
		t.Error("expected error for system message after position 0")
	}
}

func TestOpenAISpeechFormat(t *testing.T) {
	buf := audio.New([]float32{0, 0.5, -0.5}, 16000)
	p := New(ChatMessage{Role: RoleAudio, Content: "clip.wav", Audio: buf})

	parts, err := p.OpenAISpeechFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].InputAudio == nil || parts[0].InputAudio.Format != "wav" {
		t.Error("expected wav input-audio part")
	}
	if parts[0].InputAudio.Data == "" {
		t.Error("expected non-empty base64 audio data")
	}
}

func TestOpenAISpeechFormatRejectsNonAudio(t *testing.T) {
	p := New(ChatMessage{Role: RoleUser, Content: "hi"})
	if _, err := p.OpenAISpeechFormat(); err == nil {
		t.Error("expected error for non-audio message")
	}
}

func TestAnthropicFormat(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "be brief"},
		ChatMessage{Role: RoleUser, Content: "hi"},
		ChatMessage{Role: RoleAssistant, Content: "hello"},
	)

	system, msgs, err := p.AnthropicFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if system != "be brief" {
		t.Errorf("system = %q", system)
	}
	if len(msgs) != 2 || msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("got %+v", msgs)
	}
}

func TestAnthropicFormatRejectsNoneRole(t *testing.T) {
	p := New(ChatMessage{Role: RoleNone, Content: "raw"})
	if _, _, err := p.AnthropicFormat(); err == nil {
		t.Error("expected error for none-role message")
	}
}

func TestAnthropicFormatRejectsOtherRoles(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleUser, Content: "hi"},
		ChatMessage{Role: RoleAudio, Content: "clip.wav"},
	)
	if _, _, err := p.AnthropicFormat(); err == nil {
		t.Error("expected error for audio role in message list")
	}
}

func TestGeminiFormatCoercesEmptyUserText(t *testing.T) {
	buf := audio.New([]float32{0}, 16000)
	p := New(
		ChatMessage{Role: RoleAudio, Content: "clip.wav", Audio: buf},
		ChatMessage{Role: RoleUser, Content: ""},
	)

	parts, err := p.GeminiFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "audio/wav" {
		t.Error("expected inline wav data part first")
	}
	if parts[1].Text != " " {
		t.Errorf("expected empty user text coerced to a space, got %q", parts[1].Text)
	}
}

func TestGeminiFormatRejectsNoneRole(t *testing.T) {
	p := New(ChatMessage{Role: RoleNone, Content: "raw"})
	if _, err := p.GeminiFormat(); err == nil {
		t.Error("expected error for none-role message")
	}
}

func TestSystemText(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "sys"},
		ChatMessage{Role: RoleUser, Content: "hi"},
	)
	text, ok := p.SystemText()
	if !ok || text != "sys" {
		t.Errorf("SystemText() = %q, %v", text, ok)
	}

	if _, ok := New().SystemText(); ok {
		t.Error("expected no system text in an empty prompt")
	}
}

func TestRawFormatZephyr(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "be brief"},
		ChatMessage{Role: RoleUser, Content: "hi"},
	)

	got, err := p.RawFormat("HuggingFaceH4/zephyr-7b-beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<|system|>\nbe brief</s>\n<|user|>\nhi</s>\n<|assistant|>\n"
	if got != want {
		t.Errorf("RawFormat() = %q, want %q", got, want)
	}
}

func TestRawFormatZephyrRequiresTrailingUser(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleUser, Content: "hi"},
		ChatMessage{Role: RoleAssistant, Content: "hello"},
	)
	if _, err := p.RawFormat("cais/zephyr_7b_r2d2"); err == nil {
		t.Error("expected error when the last message is not user-role")
	}
}

func TestRawFormatFallbackAcceptsNoneRole(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleNone, Content: "once upon"},
		ChatMessage{Role: RoleNone, Content: "a time"},
	)
	got, err := p.RawFormat("some/base-model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "once upon\n\na time" {
		t.Errorf("RawFormat() = %q", got)
	}
}

func TestBatchFormatPadsAndAligns(t *testing.T) {
	short := audio.New(make([]float32, 5), 16000)
	long := audio.New(make([]float32, 8), 16000)

	batch := BatchPrompt{Prompts: []Prompt{
		New(
			ChatMessage{Role: RoleAudio, Audio: short},
			ChatMessage{Role: RoleUser, Content: ""},
		),
		New(
			ChatMessage{Role: RoleAudio, Audio: long},
			ChatMessage{Role: RoleSystem, Content: "sys"},
			ChatMessage{Role: RoleUser, Content: "describe"},
		),
	}}

	stacked, users, systems, err := batch.BatchFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stacked.Len() != 2 || stacked.MaxLen() != 8 {
		t.Errorf("expected 2 rows of 8 samples, got %d rows of %d", stacked.Len(), stacked.MaxLen())
	}
	if stacked.Lengths[0] != 5 || stacked.Lengths[1] != 8 {
		t.Errorf("original lengths = %v", stacked.Lengths)
	}
	if users[0] != " " || users[1] != "describe" {
		t.Errorf("users = %q", users)
	}
	if systems[0] != nil {
		t.Error("expected nil system for first prompt")
	}
	if systems[1] == nil || *systems[1] != "sys" {
		t.Error("expected system text for second prompt")
	}
}

func TestBatchFormatRejectsMissingUser(t *testing.T) {
	batch := BatchPrompt{Prompts: []Prompt{
		New(ChatMessage{Role: RoleAudio, Audio: audio.New([]float32{0}, 16000)}),
	}}
	if _, _, _, err := batch.BatchFormat(); err == nil {
		t.Error("expected error for prompt without a user message")
	}
}

func TestBatchFormatRejectsMissingAudio(t *testing.T) {
	batch := BatchPrompt{Prompts: []Prompt{
		New(ChatMessage{Role: RoleUser, Content: "hi"}),
	}}
	if _, _, _, err := batch.BatchFormat(); err == nil {
		t.Error("expected error for prompt without an audio message")
	}
}

func TestFromALMBatchInputLengthValidation(t *testing.T) {
	audios := []*AudioInput{{Path: "a.wav"}, {Path: "b.wav"}}
	users := []string{"only one"}
	if _, err := FromALMBatchInput(audios, users, nil); err == nil {
		t.Error("expected error for mismatched input lengths")
	}

	sys := "s"
	if _, err := FromALMBatchInput(audios, []string{"u1", "u2"}, []*string{&sys}); err == nil {
		t.Error("expected error for mismatched system prompt length")
	}
}

func TestFromALMBatchInput(t *testing.T) {
	users := []string{"first", "second"}
	batch, err := FromALMBatchInput(nil, users, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Len() != 2 {
		t.Fatalf("expected 2 prompts, got %d", batch.Len())
	}
	if batch.At(1).Messages[0].Content != "second" {
		t.Errorf("got %+v", batch.At(1).Messages)
	}
}

func TestPrettyPrintWritesRolesAndResponses(t *testing.T) {
	p := New(
		ChatMessage{Role: RoleSystem, Content: "sys text"},
		ChatMessage{Role: RoleUser, Content: "user text"},
	)

	var buf bytes.Buffer
	p.PrettyPrint(&buf, []Completion{{ModelID: "gpt-4o", Content: "reply text"}})

	out := buf.String()
	for _, want := range []string{"==SYSTEM:", "==USER:", "sys text", "user text", "==RESPONSE 1 (gpt-4o):", "reply text"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyPrintSkipsNoneHeader(t *testing.T) {
	var buf bytes.Buffer
	New(ChatMessage{Role: RoleNone, Content: "bare"}).PrettyPrint(&buf, nil)
	if strings.Contains(buf.String(), "==NONE:") {
		t.Error("none-role messages must not get a role header")
	}
}

// writeTempPNG writes a tiny placeholder file; the image format only
// base64-encodes the bytes, so content does not need to be a real PNG.
func writeTempPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
