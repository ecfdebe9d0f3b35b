package tools

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/toolhost/toolhost-go/cache"
	"github.com/toolhost/toolhost-go/countries"
	"github.com/toolhost/toolhost-go/schema"
	"github.com/toolhost/toolhost-go/toolset"
)

// PopulationLookup returns the population_lookup tool. It delegates to an
// external country-data provider and memoizes successful lookups in kv.
// Provider "not found" responses become failed results with guidance text;
// transport failures become failed results too, never protocol faults.
func PopulationLookup(client *countries.Client, kv cache.KV, ttl time.Duration) toolset.Descriptor {
	s := schema.New().
		Add("country", schema.FieldSpec{
			Kind:        schema.String,
			Required:    true,
			Description: "Country name (common or official English name)",
			Constraints: schema.Constraints{MinLength: 1},
		})

	return toolset.Descriptor{
		Name:        "population_lookup",
		Description: "Look up the population of a country",
		Schema:      s,
		Handler: func(ctx context.Context, args schema.Bundle) (*toolset.Result, error) {
			query := strings.TrimSpace(args.String("country"))
			key := "population:" + strings.ToLower(query)

			country, cached := fromCache(ctx, kv, key)
			if country == nil {
				var err error
				country, err = client.Lookup(ctx, query)
				if err != nil {
					if err == countries.ErrNotFound {
						return toolset.Failf("No country found matching %q. Check the spelling or try the official English name.", query).
							With("country", query), nil
					}
					return toolset.Failf("Population lookup for %q failed: %v", query, err).
						With("country", query), nil
				}
				toCache(ctx, kv, key, country, ttl)
			}

			capital := ""
			if len(country.Capital) > 0 {
				capital = country.Capital[0]
			}
			return toolset.Textf("%s (%s) has a population of %d people.",
				country.Name.Common, country.Name.Official, country.Population).
				With("country", country.Name.Common).
				With("officialName", country.Name.Official).
				With("population", country.Population).
				With("capital", capital).
				With("region", country.Region).
				With("subregion", country.Subregion).
				With("cached", cached), nil
		},
	}
}

// fromCache returns a cached country, or nil on miss or backend failure;
// cache trouble always degrades to a live lookup.
func fromCache(ctx context.Context, kv cache.KV, key string) (*countries.Country, bool) {
	if kv == nil {
		return nil, false
	}
	data, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var c countries.Country
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false
	}
	return &c, true
}

func toCache(ctx context.Context, kv cache.KV, key string, c *countries.Country, ttl time.Duration) {
	if kv == nil {
		return
	}
	if data, err := json.Marshal(c); err == nil {
		_ = kv.Set(ctx, key, data, ttl)
	}
}
