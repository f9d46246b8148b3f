package cli

import (
	"fmt"

	"github.com/RugvedaRao/StudyLog/internal/forum"
)

type RoomNewCmd struct{}

func (c *RoomNewCmd) Run(ctx *Context) error {
	code, err := forum.NewRoomCode()
	if err != nil {
		return err
	}

	if err := ctx.Forum.Connect(code); err != nil {
		return err
	}

	fmt.Printf("Created room %s\n", code)
	fmt.Printf("Share link: %s\n", forum.ShareLink(code))
	fmt.Printf("Open it with: studylog tui --room %s\n", code)
	return nil
}
