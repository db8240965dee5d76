package waypoint_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/waypoint"
)

func ExampleConverter_Convert() {
	doc := `<canvas width="480" height="270" view-box="-4 2.25 4 -2.25" fps="24">
  <layer type="circle">
    <param name="amount"><real value="5.0"/></param>
  </layer>
</canvas>`

	conv, err := waypoint.New()
	if err != nil {
		log.Fatal(err)
	}
	res, err := conv.Convert(context.Background(), strings.NewReader(doc))
	if err != nil {
		log.Fatal(err)
	}

	amount, _ := res.Param(0, "amount")
	for _, s := range amount.Path.Samples {
		fmt.Println(s.Time, s.Value, s.Before, s.After)
	}
	// Output:
	// 0s [5] constant constant
	// 0.041666666666666664s [5] constant constant
}
