package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// processStructFields walks nested config sections and overrides every field
// carrying an env tag whose variable is set.
func processStructFields(s interface{}) error {
	_, err := applyEnv(reflect.ValueOf(s), "")
	return err
}

// EnvOverrides lists the env variables that changed the configuration, for startup logs.
func EnvOverrides(cfg *Config) []string {
	var names []string
	collectEnvTags(reflect.TypeOf(*cfg), func(tag string) {
		if _, ok := os.LookupEnv(tag); ok {
			names = append(names, tag)
		}
	})
	return names
}

func applyEnv(val reflect.Value, path string) (int, error) {
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return 0, nil
	}

	applied := 0
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		name := strings.TrimPrefix(path+"."+fieldType.Name, ".")

		if field.Kind() == reflect.Struct {
			n, err := applyEnv(field.Addr(), name)
			if err != nil {
				return applied, err
			}
			applied += n
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envValue, exists := os.LookupEnv(envTag)
		if !exists {
			continue
		}

		if err := setFieldFromEnv(field, envValue); err != nil {
			return applied, fmt.Errorf("failed to set %s from env var %s: %w", name, envTag, err)
		}
		applied++
	}
	return applied, nil
}

func collectEnvTags(typ reflect.Type, visit func(tag string)) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type.Kind() == reflect.Struct {
			collectEnvTags(f.Type, visit)
			continue
		}
		if tag := f.Tag.Get("env"); tag != "" {
			visit(tag)
		}
	}
}

// setFieldFromEnv sets a field value from an environment variable string
func setFieldFromEnv(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration format: %w", err)
			}
			field.SetInt(int64(duration))
			return nil
		}
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		field.SetInt(intValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		field.SetBool(boolValue)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
