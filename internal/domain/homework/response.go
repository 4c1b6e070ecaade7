// internal/domain/homework/response.go
package homework

import (
	"encoding/json"
	"math"
)

const (
	KeyHomeworks   = "homeworks"
	KeyCurrentDate = "current_date"
)

// CheckResponse validates a decoded API body and returns its "homeworks" list
// unchanged together with the server-reported "current_date".
func CheckResponse(body any) ([]any, int64, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, 0, NewFault(FaultType, nil, "Тип ответа не словарь")
	}

	rawHomeworks, ok := m[KeyHomeworks]
	if !ok {
		return nil, 0, missingKey(KeyHomeworks)
	}
	rawDate, ok := m[KeyCurrentDate]
	if !ok {
		return nil, 0, missingKey(KeyCurrentDate)
	}

	homeworks, ok := rawHomeworks.([]any)
	if !ok {
		return nil, 0, NewFault(FaultType, nil, "\"%s\" не список", KeyHomeworks)
	}

	currentDate, ok := toUnix(rawDate)
	if !ok {
		return nil, 0, NewFault(FaultType, nil, "\"%s\" не число", KeyCurrentDate)
	}

	return homeworks, currentDate, nil
}

func missingKey(key string) *Fault {
	return NewFault(FaultEmptyResponse, nil, "В ответе отсутствует ключ \"%s\"", key)
}

func toUnix(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return floatToUnix(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToUnix(f)
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// floatToUnix rejects NaN, infinities and values outside the int64 range,
// whose conversion is implementation-defined.
func floatToUnix(f float64) (int64, bool) {
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if !(f >= math.MinInt64 && f < math.MaxInt64) {
		return 0, false
	}
	return int64(f), true
}
