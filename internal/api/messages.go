package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"weld-score/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я тренажёр сварщика: оцениваю шов на панелях по очереди.

📋 Команды:
/check — проверить текущую панель
/score — баллы последнего прохода
/overall — средний балл по всем панелям
/next — следующая панель
/reset — начать текущую панель заново
/travel <сек> — записать время проводки
/beads — отправить фото валиков
/help — справка`

	msgHelp = `ℹ️ Как проходит тренировка:

1️⃣ Сварите шов на текущей панели
2️⃣ Запишите время проводки командой /travel, например /travel 0.42
3️⃣ Пришлите фото валиков через /beads
4️⃣ Запустите /check — сканер пройдёт по шву и выставит баллы
5️⃣ Переходите к следующей панели командой /next

💡 Баллы:
• Равномерность — разброс ширины валиков, минус плохие швы, ноль при прожоге
• Покрытие — доля пути сканера, под которой есть наплавка
• Проводка — насколько среднее время близко к 0.419 с (нужно больше 10 замеров)`

	msgAwaitingPhoto     = "📸 Отправьте фото валиков текущей панели."
	msgPhotoWithoutBeads = "📸 Чтобы учесть фото, сначала отправьте /beads."
	msgCancelled         = "❌ Операция отменена."
	msgSendCommand       = "ℹ️ Используйте /help, чтобы узнать команды."
	msgUnknownCommand    = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing        = "⏳ Обрабатываю изображение..."
	msgNoBeads           = "🤷 Валики на фото не найдены."
	msgProcessingError   = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgNoPanels          = "⚠️ Панели не настроены, тренировка недоступна."
	msgFinished          = "🏁 Все панели пройдены! /reset — начать заново."
	msgAlreadyFinished   = "🏁 Панели уже закончились. /reset — начать заново."
	msgCheckFailed       = "⚠️ Проверка прервана."
	msgTravelUsage       = "✍️ Укажите время проводки в секундах: /travel 0.42"
	msgRestarted         = "🔄 Тренировка начата заново."
	msgInternalError     = "⚠️ Что-то пошло не так, попробуйте ещё раз."
)

var errTravelFormat = errors.New("travel time must be a positive number of seconds")

// parseTravel разбирает аргумент /travel, допускает запятую как разделитель
func parseTravel(arg string) (float64, error) {
	arg = strings.TrimSpace(strings.ReplaceAll(arg, ",", "."))
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil || seconds <= 0 {
		return 0, errTravelFormat
	}
	return seconds, nil
}

func formatScore(title string, score entity.WeldingScore) string {
	return fmt.Sprintf("📊 %s\nРавномерность: %d\nПокрытие: %d\nПроводка: %d", title, score.Uniformity, score.Coverage, score.Travel)
}

func formatPanel(panel *entity.Panel, index, total int) string {
	return fmt.Sprintf("🔩 Панель %d из %d: %s", index+1, total, panel.Title())
}

func formatChecking(panel *entity.Panel, seconds float64) string {
	return fmt.Sprintf("🔍 Сканирую %s... (%.1f с)", panel.Title(), seconds)
}

func formatTravel(seconds float64, samples int) string {
	if samples < entity.MinTravelSamples {
		return fmt.Sprintf("⏱ Записано %.3f с. Замеров: %d, для оценки нужно не меньше %d.", seconds, samples, entity.MinTravelSamples)
	}
	return fmt.Sprintf("⏱ Записано %.3f с. Замеров: %d.", seconds, samples)
}

func formatBeads(found, width, height int) string {
	return fmt.Sprintf("✅ Найдено валиков: %d (изображение %dx%d). Они учтены в равномерности.", found, width, height)
}
