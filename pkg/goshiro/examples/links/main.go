// Example: Load a show and list the mirrors of its first episode
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/alvarorichard/goshiro/pkg/goshiro"
)

func main() {
	slug := "one-piece"
	if len(os.Args) > 1 {
		slug = os.Args[1]
	}

	client := goshiro.NewClient()
	ctx := context.Background()

	show, err := client.Load(ctx, slug)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s (%s, %d episodes)\n", show.Title, show.Status, len(show.Episodes))
	if len(show.Episodes) == 0 {
		return
	}

	ep := show.Episodes[0]
	links, err := client.Links(ctx, ep.VideoID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nEpisode %d mirrors:\n", ep.Number)
	for _, l := range links {
		fmt.Printf("  - %s: %s\n", l.Name, l.URL)
	}
}
