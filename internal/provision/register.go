package provision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/alex-galey/cloudpilot/internal/pricing"
	"github.com/alex-galey/cloudpilot/internal/tool"
)

// Defaults applied when the model omits optional parameters.
const (
	DefaultInstanceType  = "t2.micro"
	DefaultDBEngine      = "postgres"
	DefaultDBClass       = "db.t3.micro"
	DefaultDBStorageGB   = 20
	DefaultFunctionRT    = "python3.12"
	DefaultFunctionMemMB = 128
)

// RegistryDeps collects the collaborators the provisioning tools need.
type RegistryDeps struct {
	Provider    Provider
	Credentials *CredentialStore
	Calculator  *pricing.Calculator
	Formatter   *pricing.Formatter
	Region      string
	Logger      *slog.Logger
}

// BuildRegistry assembles the full provisioning tool set. Every tool that
// creates billable resources is flagged so the confirmation gate can hold
// it back until the operator approves the plan. The table is static, so a
// bad definition panics at startup rather than surfacing later.
func BuildRegistry(deps RegistryDeps) *tool.Registry {
	if deps.Calculator == nil {
		deps.Calculator = pricing.NewCalculator()
	}
	if deps.Formatter == nil {
		deps.Formatter = pricing.NewFormatter()
	}

	registry := tool.NewRegistry()

	definitions := []tool.Definition{
		{
			Name:        "configure-credentials",
			Description: "Store the cloud access key and secret key for this session",
			ParamNames:  []string{"accessKey", "secretKey", "region"},
			Executor:    configureCredentialsExecutor(deps),
		},
		{
			Name:             "deploy-compute-instance",
			Description:      "Launch a virtual machine",
			ParamNames:       []string{"name", "instanceType", "region"},
			CreatesResources: true,
			Executor:         deployInstanceExecutor(deps),
		},
		{
			Name:             "deploy-object-bucket",
			Description:      "Create an object storage bucket",
			ParamNames:       []string{"name", "region"},
			CreatesResources: true,
			Executor:         deployBucketExecutor(deps),
		},
		{
			Name:             "deploy-managed-database",
			Description:      "Provision a managed relational database",
			ParamNames:       []string{"identifier", "engine", "instanceClass", "masterUsername", "storageGB", "multiZone"},
			CreatesResources: true,
			Executor:         deployDatabaseExecutor(deps),
		},
		{
			Name:             "deploy-function",
			Description:      "Deploy a serverless function",
			ParamNames:       []string{"name", "runtime", "handler", "memoryMB"},
			CreatesResources: true,
			Executor:         deployFunctionExecutor(deps),
		},
		{
			Name:        "attach-policy",
			Description: "Attach an access policy to an existing resource",
			ParamNames:  []string{"resourceID", "policyARN"},
			Executor:    attachPolicyExecutor(deps),
		},
		{
			Name:        "estimate-cost",
			Description: "Estimate the monthly cost of planned resources without creating anything",
			ParamNames:  []string{"resources", "resourceType", "type", "sizeClass", "instanceType", "quantity", "durationMonths", "termType", "storageGB", "multiZone", "requestCount", "avgDurationMs", "memoryMB", "name"},
			Executor:    estimateCostExecutor(deps),
		},
	}

	for _, def := range definitions {
		registry.MustRegister(def)
	}

	return registry
}

func configureCredentialsExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		accessKey := stringParam(params, "accessKey")
		secretKey := stringParam(params, "secretKey")
		if accessKey == "" || secretKey == "" {
			return tool.Result{Message: "accessKey and secretKey are required"}
		}
		region := stringParam(params, "region")
		if region == "" {
			region = deps.Region
		}

		deps.Credentials.Set(Credentials{
			AccessKey: accessKey,
			SecretKey: secretKey,
			Region:    region,
		})

		return tool.Result{
			Success: true,
			Message: fmt.Sprintf("Credentials configured for region %s", region),
		}
	}
}

func deployInstanceExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		name := stringParam(params, "name")
		if name == "" {
			name = generatedName("instance")
		}
		instanceType := stringParam(params, "instanceType")
		if instanceType == "" {
			instanceType = DefaultInstanceType
		}
		region := stringParam(params, "region")
		if region == "" {
			region = deps.Region
		}

		id, err := deps.Provider.CreateInstance(ctx, InstanceSpec{
			Name:         name,
			InstanceType: instanceType,
			Region:       region,
		})
		if err != nil {
			return tool.Result{Message: fmt.Sprintf("failed to launch instance: %v", err)}
		}

		return tool.Result{
			Success:    true,
			ResourceID: id,
			Message:    fmt.Sprintf("Instance %s (%s) launched in %s with id %s", name, instanceType, region, id),
		}
	}
}

func deployBucketExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		name := stringParam(params, "name")
		if name == "" {
			name = generatedName("bucket")
		}
		name = normalizeBucketName(name)

		id, err := deps.Provider.CreateBucket(ctx, name)
		if err != nil {
			return tool.Result{Message: fmt.Sprintf("failed to create bucket: %v", err)}
		}

		return tool.Result{
			Success:    true,
			ResourceID: id,
			Message:    fmt.Sprintf("Bucket %s created", id),
		}
	}
}

func deployDatabaseExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		spec := DatabaseSpec{
			Identifier:     stringParam(params, "identifier"),
			Engine:         stringParam(params, "engine"),
			InstanceClass:  stringParam(params, "instanceClass"),
			MasterUsername: stringParam(params, "masterUsername"),
			StorageGB:      intParam(params, "storageGB"),
			MultiZone:      boolParam(params, "multiZone"),
		}
		if spec.Identifier == "" {
			spec.Identifier = generatedName("db")
		}
		if spec.Engine == "" {
			spec.Engine = DefaultDBEngine
		}
		if spec.InstanceClass == "" {
			spec.InstanceClass = DefaultDBClass
		}
		if spec.MasterUsername == "" {
			spec.MasterUsername = "admin"
		}
		if spec.StorageGB <= 0 {
			spec.StorageGB = DefaultDBStorageGB
		}

		id, err := deps.Provider.CreateDatabase(ctx, spec)
		if err != nil {
			return tool.Result{Message: fmt.Sprintf("failed to provision database: %v", err)}
		}

		return tool.Result{
			Success:    true,
			ResourceID: id,
			Message:    fmt.Sprintf("Database %s (%s, %s) provisioned with id %s", spec.Identifier, spec.Engine, spec.InstanceClass, id),
		}
	}
}

func deployFunctionExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		spec := FunctionSpec{
			Name:     stringParam(params, "name"),
			Runtime:  stringParam(params, "runtime"),
			Handler:  stringParam(params, "handler"),
			MemoryMB: intParam(params, "memoryMB"),
		}
		if spec.Name == "" {
			spec.Name = generatedName("fn")
		}
		if spec.Runtime == "" {
			spec.Runtime = DefaultFunctionRT
		}
		if spec.Handler == "" {
			spec.Handler = "main.handler"
		}
		if spec.MemoryMB <= 0 {
			spec.MemoryMB = DefaultFunctionMemMB
		}

		id, err := deps.Provider.CreateFunction(ctx, spec)
		if err != nil {
			return tool.Result{Message: fmt.Sprintf("failed to deploy function: %v", err)}
		}

		return tool.Result{
			Success:    true,
			ResourceID: id,
			Message:    fmt.Sprintf("Function %s (%s) deployed: %s", spec.Name, spec.Runtime, id),
		}
	}
}

func attachPolicyExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		resourceID := stringParam(params, "resourceID")
		policyARN := stringParam(params, "policyARN")
		if resourceID == "" || policyARN == "" {
			return tool.Result{Message: "resourceID and policyARN are required"}
		}

		if err := deps.Provider.AttachPolicy(ctx, resourceID, policyARN); err != nil {
			return tool.Result{Message: fmt.Sprintf("failed to attach policy: %v", err)}
		}

		return tool.Result{
			Success:    true,
			ResourceID: resourceID,
			Message:    fmt.Sprintf("Policy %s attached to %s", policyARN, resourceID),
		}
	}
}

func estimateCostExecutor(deps RegistryDeps) tool.Executor {
	return func(ctx context.Context, params map[string]interface{}) tool.Result {
		var specs []pricing.ResourceSpec

		if raw, ok := params["resources"].([]interface{}); ok {
			resources := make([]map[string]interface{}, 0, len(raw))
			for _, item := range raw {
				if m, ok := item.(map[string]interface{}); ok {
					resources = append(resources, m)
				}
			}
			specs = pricing.SpecsFromResources(resources)
		} else if spec, ok := pricing.SpecFromParams(params); ok {
			specs = []pricing.ResourceSpec{spec}
		}

		if len(specs) == 0 {
			return tool.Result{Message: "no resources to estimate; provide a resource type and size"}
		}

		estimate := deps.Calculator.Estimate(specs)
		return tool.Result{
			Success: true,
			Message: deps.Formatter.Format(estimate),
		}
	}
}

func generatedName(prefix string) string {
	id := uuid.New().String()
	if idx := strings.IndexByte(id, '-'); idx > 0 {
		id = id[:idx]
	}
	return fmt.Sprintf("cloudpilot-%s-%s", prefix, id)
}

// normalizeBucketName lowercases and strips characters S3 rejects.
func normalizeBucketName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		case r == '_' || r == ' ':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}

func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func intParam(params map[string]interface{}, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}
