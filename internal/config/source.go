package config

import (
	"context"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// FileSource reads a return from a YAML file each time a snapshot is taken
type FileSource struct {
	Path   string
	Parser *InputParser
}

// NewFileSource creates a snapshot accessor for the return stored at path
func NewFileSource(path string, parser *InputParser) *FileSource {
	if parser == nil {
		parser = NewInputParser()
	}
	return &FileSource{Path: path, Parser: parser}
}

// Snapshot loads the current contents of the file
func (fs *FileSource) Snapshot(ctx context.Context) (*domain.TaxReturn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.Parser.LoadFromFile(fs.Path)
}

// String returns the file path
func (fs *FileSource) String() string {
	return fs.Path
}
