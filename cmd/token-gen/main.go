package main

import (
	"flag"
	"fmt"
	"log"

	"iwms-citizen.backend/pkg/token"
)

func main() {
	count := flag.Int("count", 1, "number of tokens to generate")
	uniqueID := flag.Bool("unique-id", false, "also print a citizen unique id per token")
	flag.Parse()

	if err := validateInputs(*count); err != nil {
		log.Fatal(err)
	}

	lines, err := buildLines(*count, *uniqueID)
	if err != nil {
		log.Fatalf("failed to generate tokens: %v", err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

func validateInputs(count int) error {
	if count <= 0 || count > 1000 {
		return fmt.Errorf("invalid count: %d (must be between 1 and 1000)", count)
	}
	return nil
}

func buildLines(count int, withUniqueID bool) ([]string, error) {
	gen := token.NewHexGenerator()
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tok, err := gen.Next()
		if err != nil {
			return nil, err
		}
		if withUniqueID {
			uid, err := token.NewUniqueID()
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("TOKEN=%s UNIQUE_ID=%s", tok, uid))
			continue
		}
		lines = append(lines, fmt.Sprintf("TOKEN=%s", tok))
	}
	return lines, nil
}
