package cli

import (
	"fmt"
	"io"
	"os"

	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
)

// readDocument loads a {"questions": [...]} file; "-" reads stdin.
func readDocument(stdin io.Reader, path string) ([]domain.Question, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return builder.ParseDocument(data)
}
