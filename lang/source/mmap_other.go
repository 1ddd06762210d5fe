//go:build !unix

package source

import (
	"io"
	"os"
)

func mapFile(f *os.File) ([]byte, func() error, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
