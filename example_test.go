package gdit_test

import (
	"fmt"
	"log"

	"github.com/praaatap/gdit.site"
	"github.com/praaatap/gdit.site/pkg/clock"
)

func ExampleEngine_NewSession() {
	eng, err := gdit.New()
	if err != nil {
		log.Fatal(err)
	}

	vc := clock.NewVirtual()
	s := eng.NewSession(vc)
	s.Submit("clear")
	vc.RunUntilIdle(0)
	s.Submit("gdit whoami")
	s.Submit("gdit status") // dropped: still busy
	vc.RunUntilIdle(0)

	for _, line := range s.Lines() {
		fmt.Printf("%s %q\n", line.Kind, line.Text)
	}
	fmt.Println("busy:", s.Busy())
	// Output:
	// command "gdit whoami"
	// output ""
	// output "👤 User Information"
	// output "━━━━━━━━━━━━━━━━━━━━━━━━━"
	// output "  Email:    developer@example.com"
	// output "  Storage:  2.3 GB / 15 GB used"
	// busy: false
}
