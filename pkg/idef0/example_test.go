package idef0_test

import (
	"fmt"

	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/statement"
)

func ExampleFromStatements() {
	res := statement.ParseString(`
Operate Restaurant is composed of Take Order
Operate Restaurant receives Hungry Customer
Operate Restaurant respects Health Code
Operate Restaurant produces Meal
Take Order receives Hungry Customer
Take Order produces Order
Cook Food receives Order
Cook Food respects Health Code
Cook Food produces Meal
`)
	d, err := idef0.FromStatements(res.Statements)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range d.Boxes() {
		fmt.Println(b.NodeNumber(), b.Name())
	}
	for _, l := range d.Lines() {
		fmt.Printf("%s: %s -> %s (%s)\n", l.Kind(), l.Source().Name(), l.Target().Name(), l.Label())
	}
	// Output:
	// A1 Take Order
	// A2 Cook Food
	// ExternalInput: Operate Restaurant -> Take Order (Hungry Customer)
	// ForwardInput: Take Order -> Cook Food (Order)
	// ExternalGuidance: Operate Restaurant -> Cook Food (Health Code)
	// ExternalOutput: Cook Food -> Operate Restaurant (Meal)
}

func ExampleBuild() {
	d := idef0.Build("Brew Coffee", func(d *idef0.Diagram) {
		d.Receives("Beans")
		d.Requires("Barista")
		d.Box("Grind", func(b *idef0.Builder) { b.Receives("Beans").Produces("Grounds") })
		d.Box("Extract", func(b *idef0.Builder) { b.Receives("Grounds").Requires("Barista") })
	})
	fmt.Println(len(d.Boxes()), "boxes,", len(d.Lines()), "lines")
	// Output:
	// 2 boxes, 3 lines
}

func ExampleFromStatements_ambiguousRoot() {
	res := statement.ParseString(`
Kitchen is composed of Cook
Dining Room is composed of Serve
`)
	_, err := idef0.FromStatements(res.Statements)
	fmt.Println(err)
	// Output:
	// one root process required, found 2: ["Kitchen", "Dining Room"]
}
