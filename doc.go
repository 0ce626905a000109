/*
Package cardtrail rebuilds a Trello board's card movement history and renders
it as SankeyMATIC flow data.

It fetches the board's creation and list-move actions, reconstructs the
chronological journey of every card across the board's lists, tallies each
consecutive (source, target) transition and emits one "Source [count] Target"
line per flow, ready to paste into sankeymatic.com.

# Usage

Construct a Generator around a data source and run it against a board id:

	package main

	import (
		"context"
		"fmt"
		"log"

		"cardtrail"
		"cardtrail/internal/trello"
	)

	func main() {
		client := trello.NewClient("api-key", "token")

		gen, err := cardtrail.New(client)
		if err != nil {
			log.Fatal(err)
		}

		res, err := gen.Generate(context.Background(), "board-id")
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(res.Output())
	}

By default the output is the raw transition tally, ordered by descending
count. With WithNormalization enabled, list names are mapped onto a canonical
pipeline, backward movements are dropped and cards parked at intermediate
stages flow into a Waiting sink so the diagram balances.
*/
package cardtrail

// Version is the current cardtrail release.
const Version = "0.1.0"
