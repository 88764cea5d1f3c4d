package parsing

import "context"

// Provider extracts normalized text from binary uploads. Implementations
// stage the raw bytes first, then run the extraction against the staged copy.
type Provider interface {
	// StageFile uploads raw bytes under the given relative path so the
	// extraction calls can reference them.
	StageFile(ctx context.Context, relativePath string, content []byte) error

	// ParseDocument extracts text from a staged pdf or docx file.
	ParseDocument(ctx context.Context, relativePath string) (string, error)

	// TranscribeAudio transcribes a staged audio file to text.
	TranscribeAudio(ctx context.Context, relativePath string) (string, error)
}
