package config

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and an optional config file to produce
// a Config. Flag values override file settings; file settings override the
// built-in defaults.
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	if helpFlag := flagSet.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	configPath := flagSet.Lookup("config").Value.String()
	if len(args) == 0 && configPath == "" {
		displayHelp(cmd)
		return nil, ErrHelpRequested
	}

	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	settings := cfgViper.AllSettings()

	cfg := &Config{
		Method:        "GET",
		Headers:       map[string]string{},
		Params:        map[string]string{},
		TotalRequests: DefaultTotalRequests,
		Concurrency:   DefaultConcurrency,
		Timeout:       DefaultTimeout,
		LogFile:       DefaultLogFile,
		ConfigFile:    configPath,
		Tracing:       TracingConfig{Protocol: "grpc", SampleRate: 1.0},
	}

	if err := applyConfigSettings(cfg, settings); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	cfg.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))
	cfg.TargetURL = strings.TrimSpace(cfg.TargetURL)
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)

	// Viper lowercases every settings key, so restore canonical header
	// names. Query parameter keys stay exactly as configured via flags.
	cfg.Headers = canonicalizeHeaderKeys(cfg.Headers)
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}

	return cfg, nil
}

func canonicalizeHeaderKeys(headers map[string]string) map[string]string {
	canonical := make(map[string]string, len(headers))
	for key, value := range headers {
		canonical[http.CanonicalHeaderKey(strings.TrimSpace(key))] = value
	}
	return canonical
}

// applyConfigSettings applies settings from a config file to the Config struct.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	if raw, ok := lookupSetting(settings, "target", "url"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		cfg.TargetURL = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "method"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("method: %w", err)
		}
		if val != "" {
			cfg.Method = val
		}
	}

	if raw, ok := lookupSetting(settings, "headers"); ok {
		hdrs, err := asStringMap(raw)
		if err != nil {
			return fmt.Errorf("headers: %w", err)
		}
		if hdrs != nil {
			cfg.Headers = hdrs
		}
	}

	if raw, ok := lookupSetting(settings, "params"); ok {
		params, err := asStringMap(raw)
		if err != nil {
			return fmt.Errorf("params: %w", err)
		}
		if params != nil {
			cfg.Params = params
		}
	}

	if raw, ok := lookupSetting(settings, "total_requests", "total"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("total_requests: %w", err)
		}
		cfg.TotalRequests = val
	}

	if raw, ok := lookupSetting(settings, "concurrent_requests", "concurrency"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("concurrent_requests: %w", err)
		}
		cfg.Concurrency = val
	}

	if raw, ok := lookupSetting(settings, "timeout"); ok {
		val, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = val
	}

	if raw, ok := lookupSetting(settings, "rate"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		cfg.Rate = val
	}

	if raw, ok := lookupSetting(settings, "log_file", "logfile"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("log_file: %w", err)
		}
		if val != "" {
			cfg.LogFile = val
		}
	}

	if raw, ok := lookupSetting(settings, "json_output"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("json_output: %w", err)
		}
		cfg.JSONOutput = val
	}

	if raw, ok := lookupSetting(settings, "tracing"); ok {
		if err := applyTracingSettings(&cfg.Tracing, raw); err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
	}

	return nil
}

func applyTracingSettings(tracing *TracingConfig, raw interface{}) error {
	section, err := toStringKeyMap(raw)
	if err != nil {
		return err
	}

	if val, ok := lookupSetting(section, "endpoint"); ok {
		endpoint, err := asString(val)
		if err != nil {
			return fmt.Errorf("endpoint: %w", err)
		}
		tracing.Endpoint = strings.TrimSpace(endpoint)
	}
	if val, ok := lookupSetting(section, "protocol"); ok {
		protocol, err := asString(val)
		if err != nil {
			return fmt.Errorf("protocol: %w", err)
		}
		if protocol != "" {
			tracing.Protocol = protocol
		}
	}
	if val, ok := lookupSetting(section, "insecure"); ok {
		insecure, err := asBool(val)
		if err != nil {
			return fmt.Errorf("insecure: %w", err)
		}
		tracing.Insecure = insecure
	}
	if val, ok := lookupSetting(section, "sample_rate"); ok {
		rate, err := asFloat64(val)
		if err != nil {
			return fmt.Errorf("sample_rate: %w", err)
		}
		tracing.SampleRate = rate
	}
	if val, ok := lookupSetting(section, "service_name"); ok {
		name, err := asString(val)
		if err != nil {
			return fmt.Errorf("service_name: %w", err)
		}
		tracing.ServiceName = strings.TrimSpace(name)
	}
	if val, ok := lookupSetting(section, "propagate"); ok {
		propagate, err := asBool(val)
		if err != nil {
			return fmt.Errorf("propagate: %w", err)
		}
		tracing.Propagate = propagate
	}

	return nil
}

// applyFlagOverrides applies explicitly-set flags over file settings.
func applyFlagOverrides(cfg *Config, flags *pflag.FlagSet) error {
	if flags.Changed("target") {
		cfg.TargetURL, _ = flags.GetString("target")
	}
	if flags.Changed("method") {
		cfg.Method, _ = flags.GetString("method")
	}
	if flags.Changed("header") {
		pairs, _ := flags.GetStringSlice("header")
		hdrs, err := parseKeyValuePairs(pairs)
		if err != nil {
			return fmt.Errorf("header: %w", err)
		}
		for key, value := range hdrs {
			cfg.Headers[key] = value
		}
	}
	if flags.Changed("param") {
		pairs, _ := flags.GetStringSlice("param")
		params, err := parseKeyValuePairs(pairs)
		if err != nil {
			return fmt.Errorf("param: %w", err)
		}
		for key, value := range params {
			cfg.Params[key] = value
		}
	}
	if flags.Changed("total") {
		cfg.TotalRequests, _ = flags.GetInt("total")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("rate") {
		cfg.Rate, _ = flags.GetInt("rate")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("json-output") {
		cfg.JSONOutput, _ = flags.GetBool("json-output")
	}
	if flags.Changed("otlp-endpoint") {
		cfg.Tracing.Endpoint, _ = flags.GetString("otlp-endpoint")
	}
	if flags.Changed("otlp-protocol") {
		cfg.Tracing.Protocol, _ = flags.GetString("otlp-protocol")
	}
	if flags.Changed("otlp-insecure") {
		cfg.Tracing.Insecure, _ = flags.GetBool("otlp-insecure")
	}
	if flags.Changed("trace-sample-rate") {
		cfg.Tracing.SampleRate, _ = flags.GetFloat64("trace-sample-rate")
	}
	if flags.Changed("trace-propagate") {
		cfg.Tracing.Propagate, _ = flags.GetBool("trace-propagate")
	}
	return nil
}

// parseKeyValuePairs parses repeated key=value flag values into a map.
func parseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key in %q", pair)
		}
		result[key] = value
	}
	return result, nil
}
