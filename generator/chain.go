package generator

import (
	"context"
	"log"
)

// Chain walks the configured providers in priority order. The first tier
// whose response survives extraction wins; remaining tiers are never
// invoked. When every tier fails, the deterministic template synthesizer
// answers, so generation has no failure path.
type Chain struct {
	clients []Client
}

func NewChain(clients ...Client) *Chain {
	return &Chain{clients: clients}
}

// Clients returns the tier order.
func (c *Chain) Clients() []Client { return c.clients }

// Generate produces a production package for the story premise.
func (c *Chain) Generate(ctx context.Context, story string) Outcome {
	prompt := BuildGeneratePrompt(story)
	for _, client := range c.clients {
		raw, err := client.Complete(ctx, prompt)
		if err != nil {
			log.Printf("[llm] %s generation failed: %v", client.Name(), err)
			continue
		}
		pkg, err := ExtractPackage(raw)
		if err != nil {
			log.Printf("[llm] %s returned unusable payload: %v", client.Name(), err)
			continue
		}
		log.Printf("[llm] %s generation succeeded", client.Name())
		return Outcome{Package: pkg, Provider: client.Name()}
	}
	log.Printf("[llm] all providers failed or none configured, using template fallback")
	return Outcome{Package: SynthesizePackage(story), Provider: ProviderTemplate}
}
