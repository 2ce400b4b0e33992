// Example: Basic catalog search using the goshiro library
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/alvarorichard/goshiro/pkg/goshiro"
)

func main() {
	client := goshiro.NewClient()

	fmt.Println("Searching for 'One Piece'...")
	results, err := client.Search(context.Background(), "One Piece", nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nFound %d results:\n\n", len(results))
	for i, show := range results {
		kind := "sub"
		if show.Dubbed {
			kind = "dub"
		}
		fmt.Printf("%d. %s [%s]\n", i+1, show.Title, kind)
		fmt.Printf("   Slug: %s\n", show.Slug)
		if show.EpisodeCount != nil {
			fmt.Printf("   Episodes: %d\n", *show.EpisodeCount)
		}
		if show.ImageURL != "" {
			fmt.Printf("   Image: %s\n", show.ImageURL)
		}
		fmt.Println()
	}
}
