package dataset

// JSON Schemas for the two dataset files. Files are validated against
// these before decoding so that shape errors surface with schema paths
// instead of half-populated structs.

var diseasesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"disease_id":   map[string]any{"type": "string", "minLength": 1},
			"disease_name": map[string]any{"type": "string", "minLength": 1},
			"category": map[string]any{
				"type": "string",
				"enum": []any{"内科", "外科", "妇科", "儿科", "其他"},
			},
			"key_symptoms": map[string]any{"type": "string"},
			"key_pulse":    map[string]any{"type": "string"},
			"related_diseases": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"syndromes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{
			"disease_id", "disease_name", "category",
			"key_symptoms", "key_pulse", "related_diseases", "syndromes",
		},
		"additionalProperties": false,
	},
}

var syndromesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"syndrome_id":   map[string]any{"type": "string", "minLength": 1},
			"disease_id":    map[string]any{"type": "string", "minLength": 1},
			"syndrome_name": map[string]any{"type": "string", "minLength": 1},
			"symptoms": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"full_text": map[string]any{"type": "string"},
					"items": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"text":   map[string]any{"type": "string", "minLength": 1},
								"is_key": map[string]any{"type": "boolean"},
							},
							"required":             []any{"text", "is_key"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"full_text", "items"},
				"additionalProperties": false,
			},
			"pathogenesis":     map[string]any{"type": "string", "minLength": 1},
			"treatment_method": map[string]any{"type": "string", "minLength": 1},
			"prescription": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"primary": map[string]any{"type": "string", "minLength": 1},
					"alternative": map[string]any{
						"type": []any{"string", "null"},
					},
				},
				"required":             []any{"primary", "alternative"},
				"additionalProperties": false,
			},
			"key_symptom_analysis": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{
			"syndrome_id", "disease_id", "syndrome_name", "symptoms",
			"pathogenesis", "treatment_method", "prescription", "key_symptom_analysis",
		},
		"additionalProperties": false,
	},
}
