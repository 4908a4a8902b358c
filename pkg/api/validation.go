package api

import (
	"github.com/convox/stdapi"
	"github.com/deckops/deck/pkg/structs"
)

var modes = []structs.Mode{
	structs.ModeCreate,
	structs.ModeClone,
	structs.ModeCreatePipeline,
	structs.ModeEditPipeline,
	structs.ModeEditClonePipeline,
}

func (s *Server) ServerGroupCommandCloneValidate(c *stdapi.Context) error {
	return validateMode(c.Query("mode"))
}

func (s *Server) ServerGroupCommandNewValidate(c *stdapi.Context) error {
	return validateMode(c.Query("mode"))
}

func validateMode(mode string) error {
	if mode == "" {
		return nil
	}

	for _, m := range modes {
		if string(m) == mode {
			return nil
		}
	}

	return stdapi.Errorf(400, "invalid mode: %s", mode)
}
