package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/gridcaster/internal/placeholders"
)

func main() {
	dir := flag.String("out", "assets/placeholders", "Directory to write the atlas into")
	flag.Parse()

	fmt.Println("Gridcaster Placeholder Texture Generator")
	fmt.Println("========================================")
	fmt.Println()

	configPath, err := placeholders.Save(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println()
	fmt.Println("Done! Point a map's \"atlas\" field or -atlas at it to use these textures.")
}
