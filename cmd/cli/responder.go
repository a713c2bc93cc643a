package main

import (
	"context"
	"fmt"
	"io"

	"github.com/keshon/abyss/internal/command"
)

// textResponder prints replies as plain text.
type textResponder struct {
	w io.Writer
}

func (r *textResponder) Reply(_ context.Context, reply command.Reply) error {
	_, err := fmt.Fprintln(r.w, command.RenderText(reply))
	return err
}
