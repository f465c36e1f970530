package pricing

// SpecFromParams builds a ResourceSpec from a directive's flat parameter
// map. Unknown or mistyped fields fall back to zero values so a sloppy
// directive still estimates with defaults instead of failing.
func SpecFromParams(params map[string]interface{}) (ResourceSpec, bool) {
	resourceType, ok := ParseResourceType(stringParam(params, "type", "resourceType"))
	if !ok {
		return ResourceSpec{}, false
	}

	spec := ResourceSpec{
		Name:           stringParam(params, "name", "resourceName"),
		Type:           resourceType,
		SizeClass:      stringParam(params, "sizeClass", "instanceType", "instanceClass"),
		Quantity:       int(numberParam(params, "quantity", "count")),
		DurationMonths: int(numberParam(params, "durationMonths", "months")),
		TermType:       ParseTerm(stringParam(params, "termType", "term")),
		Region:         stringParam(params, "region"),
		StorageGB:      numberParam(params, "storageGB", "sizeGB"),
		MultiZone:      boolParam(params, "multiZone", "multiAZ"),
		RequestCount:   numberParam(params, "requestCount", "requests"),
		AvgDurationMs:  numberParam(params, "avgDurationMs", "durationMs"),
		MemoryMB:       numberParam(params, "memoryMB", "memory"),
	}

	return spec, true
}

// SpecsFromResources converts the resource list attached to a plan
// directive; entries without a recognizable type are skipped.
func SpecsFromResources(resources []map[string]interface{}) []ResourceSpec {
	var specs []ResourceSpec
	for _, resource := range resources {
		if spec, ok := SpecFromParams(resource); ok {
			specs = append(specs, spec)
		}
	}
	return specs
}

func stringParam(params map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := params[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func numberParam(params map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch value := params[key].(type) {
		case float64:
			return value
		case int:
			return float64(value)
		}
	}
	return 0
}

func boolParam(params map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if value, ok := params[key].(bool); ok {
			return value
		}
	}
	return false
}
