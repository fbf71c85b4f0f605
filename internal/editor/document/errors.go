package document

import (
	"errors"

	"target-editor/internal/editor/freeform"
	"target-editor/internal/editor/models"
)

var (
	ErrNoSuchRegion         = errors.New("no such region")
	ErrInvalidColor         = models.ErrInvalidColor
	ErrInsufficientVertices = freeform.ErrInsufficientVertices
)
