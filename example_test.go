package playerctl_test

import (
	"fmt"

	playerctl "github.com/FliegendeWurst/go-playerctl"
)

func Example() {
	// Command the active player to toggle between play and pause.
	if err := playerctl.PlayPause(); err != nil {
		fmt.Println(err)
	}

	// Seek forward ten seconds, then back again.
	_ = playerctl.Position(10)
	_ = playerctl.Position(-10)

	// Query metadata for every active player.
	players, err := playerctl.Metadata()
	if err != nil {
		fmt.Println(err)
		return
	}
	for name, meta := range players {
		if meta.Title != nil {
			fmt.Printf("%s: %s\n", name, *meta.Title)
		}
	}
}
