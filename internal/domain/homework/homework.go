// internal/domain/homework/homework.go
package homework

// Homework is a single submission record as returned by the API.
// It is never persisted.
type Homework struct {
	Name   string // homework_name
	Status Status // status
}

// FromRaw decodes one element of the "homeworks" list.
func FromRaw(raw any) (Homework, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Homework{}, NewFault(FaultType, nil, "Элемент списка \"homeworks\" не словарь")
	}

	name, ok := m["homework_name"].(string)
	if !ok {
		return Homework{}, NewFault(FaultType, nil, "В домашней работе нет строкового поля \"homework_name\"")
	}
	status, ok := m["status"].(string)
	if !ok {
		return Homework{}, NewFault(FaultType, nil, "В домашней работе нет строкового поля \"status\"")
	}

	return Homework{Name: name, Status: Status(status)}, nil
}
