package recognizer

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv2"
	"cloud.google.com/go/speech/apiv2/speechpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/MalcolmSlaney/GoogleSIN/internal/audio"
	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

// The chirp model is only served from a regional endpoint.
const chirpEndpoint = "us-central1-speech.googleapis.com:443"

// GoogleRecognizer submits audio to the Cloud Speech-to-Text v2 API.
type GoogleRecognizer struct {
	client   *speech.Client
	cfg      config.RecognizerConfig
	location string
}

func NewGoogleRecognizer(ctx context.Context, cfg config.RecognizerConfig) (*GoogleRecognizer, error) {
	location := "global"
	var opts []option.ClientOption
	if cfg.Model == "chirp" {
		location = "us-central1"
		opts = append(opts, option.WithEndpoint(chirpEndpoint))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &GoogleRecognizer{client: client, cfg: cfg, location: location}, nil
}

func (g *GoogleRecognizer) Close() error {
	return g.client.Close()
}

func (g *GoogleRecognizer) recognizerName() string {
	return fmt.Sprintf("projects/%s/locations/%s/recognizers/_", g.cfg.Project, g.location)
}

func (g *GoogleRecognizer) features() *speechpb.RecognitionFeatures {
	autoPunct, spokenPunct := modelFeatures(g.cfg.Model)
	return &speechpb.RecognitionFeatures{
		EnableWordTimeOffsets:      true,
		EnableAutomaticPunctuation: autoPunct,
		EnableSpokenPunctuation:    spokenPunct,
	}
}

// RecognizeFile recognizes the speech in one audio file. A .wav path is
// decoded locally and submitted as a raw waveform; any other file is sent
// whole with decoding auto-detected by the service.
func (g *GoogleRecognizer) RecognizeFile(ctx context.Context, path string) (*transcript.Response, error) {
	if strings.HasSuffix(path, ".wav") {
		rate, pcm, err := audio.ReadWAV(path)
		if err != nil {
			return nil, err
		}
		return g.RecognizeWaveform(ctx, pcm, rate)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	req := &speechpb.RecognizeRequest{
		Recognizer: g.recognizerName(),
		Config: &speechpb.RecognitionConfig{
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
			Model:         g.cfg.Model,
			LanguageCodes: []string{g.cfg.Locale},
			Features:      g.features(),
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: content},
	}
	resp, err := g.client.Recognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", path, err)
	}
	return fromProto(resp, g.cfg.Model), nil
}

// RecognizeWaveform submits raw 16-bit signed little-endian mono samples with
// an explicit decoding config. A non-positive sampleRate falls back to the
// configured default.
func (g *GoogleRecognizer) RecognizeWaveform(ctx context.Context, pcm []byte, sampleRate int) (*transcript.Response, error) {
	if sampleRate <= 0 {
		sampleRate = g.cfg.SampleRate
	}
	req := &speechpb.RecognizeRequest{
		Recognizer: g.recognizerName(),
		Config: &speechpb.RecognitionConfig{
			DecodingConfig: &speechpb.RecognitionConfig_ExplicitDecodingConfig{
				ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
					Encoding:          speechpb.ExplicitDecodingConfig_LINEAR16,
					SampleRateHertz:   int32(sampleRate),
					AudioChannelCount: 1,
				},
			},
			Model:         g.cfg.Model,
			LanguageCodes: []string{g.cfg.Locale},
			Features:      g.features(),
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: pcm},
	}
	resp, err := g.client.Recognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recognize waveform: %w", err)
	}
	return fromProto(resp, g.cfg.Model), nil
}

// ListRecognizers returns the recognizer names configured under the project.
func (g *GoogleRecognizer) ListRecognizers(ctx context.Context) ([]string, error) {
	parent := fmt.Sprintf("projects/%s/locations/%s", g.cfg.Project, g.location)
	it := g.client.ListRecognizers(ctx, &speechpb.ListRecognizersRequest{Parent: parent})
	var names []string
	for {
		r, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list recognizers: %w", err)
		}
		names = append(names, r.GetName())
	}
	return names, nil
}

// fromProto copies the cloud response into the local transcript contract so
// nothing downstream touches the protobuf types.
func fromProto(resp *speechpb.RecognizeResponse, model string) *transcript.Response {
	out := &transcript.Response{Model: model}
	for _, result := range resp.GetResults() {
		var r transcript.Result
		for _, alt := range result.GetAlternatives() {
			a := transcript.Alternative{
				Transcript: alt.GetTranscript(),
				Confidence: float64(alt.GetConfidence()),
			}
			for _, w := range alt.GetWords() {
				a.Words = append(a.Words, transcript.WordInfo{
					Word:        w.GetWord(),
					StartOffset: w.GetStartOffset().AsDuration(),
					EndOffset:   w.GetEndOffset().AsDuration(),
				})
			}
			r.Alternatives = append(r.Alternatives, a)
		}
		out.Results = append(out.Results, r)
	}
	return out
}
