// Package profiling wires Pyroscope continuous profiling.
package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/apexadvisory/rsvp-api/config"
	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

const defaultAppName = "rsvp-api"

var profileTypeMap = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// The service spends its time waiting on SMTP and the storage webhook, so
// lock profiles are opt-in.
var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
}

// Labels identify the running instance in the profiling backend
type Labels struct {
	ServiceName string
	Namespace   string
	Version     string
	InstanceID  string
	Environment string
}

// LabelsFromConfig builds Labels from the observability settings
func LabelsFromConfig(o11y config.ObservabilityConfig, environment string) Labels {
	return Labels{
		ServiceName: o11y.ServiceName,
		Namespace:   o11y.ServiceNamespace,
		Version:     o11y.ServiceVersion,
		InstanceID:  o11y.ServiceInstanceID,
		Environment: environment,
	}
}

func (l Labels) tags() map[string]string {
	return map[string]string{
		"service_name":    l.ServiceName,
		"namespace":       l.Namespace,
		"environment":     l.Environment,
		"service_version": l.Version,
		"instance":        l.InstanceID,
	}
}

// Start begins continuous profiling and returns a stop function. When
// profiling is disabled the stop function is a no-op.
func Start(cfg config.ProfilingConfig, labels Labels) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	uploadEvery := time.Duration(cfg.UploadIntervalSeconds) * time.Second
	if uploadEvery <= 0 {
		uploadEvery = 15 * time.Second
	}

	profileTypes, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	appName := applicationName(cfg.AppName)
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		UploadRate:      uploadEvery,
		ProfileTypes:    profileTypes,
		Tags:            labels.tags(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Int("profile_types", len(profileTypes)),
		zap.Duration("upload_interval", uploadEvery),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	if strings.TrimSpace(value) == "" {
		return defaultProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]bool)

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		mapped, ok := profileTypeMap[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}
		for _, t := range mapped {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}

	if len(types) == 0 {
		return defaultProfileTypes, nil
	}
	return types, nil
}

func applicationName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return defaultAppName
}
