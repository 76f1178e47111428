package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// GetLevel parses a level name as accepted by the --log-level flag.
func GetLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Debug, fmt.Errorf("invalid log level: %v", level)
}

// GetFormatter returns the formatter for a --log-format value: "text",
// "json-pretty" or "json", the default.
func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case "text":
		return &textFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	}
	return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
}

// textFormatter prints the level and message on one line and each field,
// sorted by key, indented on its own line below.
type textFormatter struct{}

func (*textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var val string
		if s, ok := e.Data[k].(string); ok {
			val = s
		} else {
			raw, err := json.Marshal(e.Data[k])
			if err != nil {
				return nil, err
			}
			val = string(raw)
		}
		fmt.Fprintf(&b, "  %s = %s\n", k, val)
	}
	return b.Bytes(), nil
}
