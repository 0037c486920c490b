package automata_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/automata"
)

func Example() {
	eng, err := automata.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, input := range []string{"aa", "ba", "bb", "abc"} {
		run, err := eng.Run(ctx, "ab-pattern", input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-4s %-24s %s\n", input, run.Verdict, run.Path())
	}

	// Output:
	// aa   accepted                 q0 → q1 → q4
	// ba   accepted                 q0 → q2 → q4
	// bb   rejected_not_accepting   q0 → q2 → q3
	// abc  rejected_invalid_symbol  q0 → q1 → q2
}

func ExampleEngine_Run_email() {
	eng, err := automata.New()
	if err != nil {
		log.Fatal(err)
	}

	for _, input := range []string{"juan3@uptc.edu.co", "juan@uptc.com", "123juan@uptc.edu.co"} {
		run, _ := eng.Run(context.Background(), "uptc-email", input)
		fmt.Println(input, run.Verdict)
	}

	// Output:
	// juan3@uptc.edu.co accepted
	// juan@uptc.com rejected_suffix_mismatch
	// 123juan@uptc.edu.co rejected_no_transition
}
