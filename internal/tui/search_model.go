package tui

import (
	"strings"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
)

// SearchManager holds the filter applied to the board.
type SearchManager struct {
	Query string
}

func (s SearchManager) Active() bool {
	return strings.TrimSpace(s.Query) != ""
}

// Apply narrows b to the matching tasks; an inactive filter returns b as is.
func (s SearchManager) Apply(b models.Board, names map[int64]string) models.Board {
	if !s.Active() {
		return b
	}
	return service.FilterBoard(b, service.TaskFilter{Search: s.Query, Names: names})
}
