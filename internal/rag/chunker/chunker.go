package chunker

import (
	"fmt"

	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/domain/docModel"
)

// Split cuts text into fixed-size overlapping windows with position metadata.
// Embeddings are left unset. The output is a pure function of the inputs:
// identical arguments always produce identical boundaries.
func Split(text string, chunkSize int, overlap int) ([]docModel.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", apperrors.ErrInvalidConfiguration, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		//a stride of zero or less would loop forever
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", apperrors.ErrInvalidConfiguration, overlap, chunkSize)
	}

	var chunks []docModel.Chunk
	stride := chunkSize - overlap

	for position, index := 0, 0; position < len(text); position, index = position+stride, index+1 {
		end := position + chunkSize
		if end > len(text) {
			end = len(text)
		}

		chunks = append(chunks, docModel.Chunk{
			Content: text[position:end],
			Index:   index,
			Start:   position,
			End:     end,
		})
	}

	return chunks, nil
}
