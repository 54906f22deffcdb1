package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

// execRecognizer shells out to a local ASR command, for running without cloud
// credentials. The command receives --audio <path> (plus --model/--language
// when configured) and must print word-timed JSON on stdout.
type execRecognizer struct {
	cmd []string
	cfg config.RecognizerConfig
}

type execWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type execSegment struct {
	Transcript string     `json:"transcript"`
	Confidence float64    `json:"confidence"`
	Words      []execWord `json:"words"`
}

type execOutput struct {
	Segments []execSegment `json:"segments"`
}

func NewExecRecognizer(cfg config.RecognizerConfig) (Recognizer, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse recognizer command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("recognizer command is empty")
	}
	return &execRecognizer{cmd: args, cfg: cfg}, nil
}

func (r *execRecognizer) RecognizeFile(ctx context.Context, path string) (*transcript.Response, error) {
	args := append([]string{}, r.cmd...)
	base := args[0]
	cmdArgs := append(args[1:], "--audio", path)
	if r.cfg.ModelPath != "" {
		cmdArgs = append(cmdArgs, "--model", r.cfg.ModelPath)
	}
	if r.cfg.Locale != "" {
		cmdArgs = append(cmdArgs, "--language", r.cfg.Locale)
	}

	command := exec.CommandContext(ctx, base, cmdArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, fmt.Errorf("recognizer command failed: %w: %s", err, stderr.String())
	}

	var out execOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("decode recognizer output: %w", err)
	}

	resp := &transcript.Response{Model: "exec"}
	for _, seg := range out.Segments {
		alt := transcript.Alternative{
			Transcript: seg.Transcript,
			Confidence: seg.Confidence,
		}
		for _, w := range seg.Words {
			alt.Words = append(alt.Words, transcript.WordInfo{
				Word:        w.Word,
				StartOffset: time.Duration(w.Start * float64(time.Second)),
				EndOffset:   time.Duration(w.End * float64(time.Second)),
			})
		}
		resp.Results = append(resp.Results, transcript.Result{
			Alternatives: []transcript.Alternative{alt},
		})
	}
	return resp, nil
}
