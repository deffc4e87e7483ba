package results

// bundleSchema describes the shape the loader accepts. Only the fields the
// post-processor reads are constrained; everything else is ignored.
var bundleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"htmls": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"convos": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"role":    map[string]any{"type": []string{"string", "null"}},
						"content": map[string]any{"type": []string{"string", "null"}},
					},
				},
			},
		},
	},
}
