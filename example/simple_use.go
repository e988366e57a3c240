package main

import (
	"fmt"

	"github.com/leandrodaf/seqtree/internal/logger"
	"github.com/leandrodaf/seqtree/sdk/contracts"
	"github.com/leandrodaf/seqtree/sdk/seqtree"
)

func main() {
	log := logger.NewZapLogger()

	gen, err := seqtree.NewGenerator(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithSeed(2024),
	)
	if err != nil {
		log.Error("Failed to start generator", log.Field().Error("error", err))
		return
	}
	defer gen.Stop()

	trunk := []contracts.Step{
		{Note: "C4", Duration: 1},
		{Note: "Eb4", Duration: 0.5},
		{Duration: 0.5},
		{Note: "G4", Duration: 1},
		{Note: "Bb4", Duration: 1},
	}

	// Both requests queue on the same worker and are answered in order.
	small := gen.Submit(contracts.GenerationRequest{
		Height: 1,
		Trunk:  trunk,
		State:  contracts.SequenceState{Length: 5, Order: contracts.OrderForward, Repeat: 1},
	})
	large := gen.Submit(contracts.GenerationRequest{
		Height: 3,
		Trunk:  trunk,
		State:  contracts.SequenceState{Length: 4, Order: contracts.OrderPendulum, Transpose: 12, Repeat: 2},
	})

	for _, ch := range []<-chan contracts.GenerationResponse{small, large} {
		resp := <-ch
		if resp.Err != nil {
			log.Error("Generation failed", log.Field().Error("error", resp.Err))
			continue
		}
		fmt.Printf("request %s: %d nodes, %d paths\n", resp.RequestID, resp.Root.Count(), len(resp.Paths))
		for i, path := range resp.Paths {
			fmt.Printf("  path %d:", i+1)
			for _, step := range path {
				if step.IsRest() {
					fmt.Printf(" -")
					continue
				}
				fmt.Printf(" %s", step.Note)
			}
			fmt.Println()
		}
	}
}
