// internal/domain/homework/status.go
package homework

import "fmt"

// Status is the review state reported by the Practicum API for a homework.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts maps every known status to the sentence shown to the student.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human-readable sentence for s.
func (s Status) Verdict() (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// ParseStatus builds the notification text for hw.
// An unrecognised status yields a FaultUnknownStatus error.
func ParseStatus(hw Homework) (string, error) {
	verdict, ok := hw.Status.Verdict()
	if !ok {
		return "", NewFault(FaultUnknownStatus, nil, "Неизвестный статус домашней работы: %q", string(hw.Status))
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.Name, verdict), nil
}
