package entity

// TraineeState состояние сварщика в диалоге
type TraineeState string

const (
	StateMainMenu          TraineeState = "main_menu"           // В главном меню
	StateAwaitingBeadPhoto TraineeState = "awaiting_bead_photo" // Ожидание фото валиков
	StateScanning          TraineeState = "scanning"            // Идёт проход сканера
)

// Trainee представляет сварщика, проходящего тренировку
type Trainee struct {
	ID     int64        // Telegram User ID
	ChatID int64        // Telegram Chat ID
	State  TraineeState // Текущее состояние
}

// NewTrainee создаёт сварщика с начальным состоянием
func NewTrainee(userID, chatID int64) *Trainee {
	return &Trainee{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние сварщика
func (t *Trainee) SetState(state TraineeState) {
	t.State = state
}
