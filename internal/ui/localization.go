package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeySerialPort      = "serial_port"
	KeyRescan          = "rescan"
	KeyAutoDetect      = "auto_detect"
	KeyBaudRate        = "baud_rate"
	KeyProject         = "project"
	KeyBrowse          = "browse"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyErase           = "erase"
	KeyEraseWarning    = "erase_warning"
	KeyFlash           = "flash"
	KeyFlashFiles      = "flash_files"
	KeyNoFileSelected  = "no_file_selected"
	KeyConsole         = "console"
	KeyWarning         = "warning"
	KeyProjectError    = "project_error"
	KeyEsptoolCommand  = "esptool_command"
	KeySettingsSaved   = "settings_saved"
	KeyRestartRequired = "restart_required"
	KeyBusy            = "busy"
	KeyShowInFolder    = "show_in_folder"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "ESP32 Firmware Flash Tool",
		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeySerialPort:      "Serial port",
		KeyRescan:          "Rescan",
		KeyAutoDetect:      "Automatic",
		KeyBaudRate:        "Baud rate",
		KeyProject:         "Project file",
		KeyBrowse:          "Browse",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyErase:           "Erase ESP",
		KeyEraseWarning:    "Erasing wipes the whole chip; reflash all files afterwards.",
		KeyFlash:           "Flash ESP",
		KeyFlashFiles:      "Files to flash",
		KeyNoFileSelected:  "No file selected",
		KeyConsole:         "Console",
		KeyWarning:         "Warning",
		KeyProjectError:    "Error loading project file",
		KeyEsptoolCommand:  "esptool command",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyRestartRequired: "Changes to the esptool command apply after a restart.",
		KeyBusy:            "Busy",
		KeyShowInFolder:    "Show project in folder",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "Прошивальщик ESP32",
		KeySettings:        "Настройки",
		KeyFile:            "Файл",
		KeyLanguage:        "Язык",
		KeySerialPort:      "Последовательный порт",
		KeyRescan:          "Обновить",
		KeyAutoDetect:      "Автоматически",
		KeyBaudRate:        "Скорость",
		KeyProject:         "Файл проекта",
		KeyBrowse:          "Обзор",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyErase:           "Стереть ESP",
		KeyEraseWarning:    "Стирание очищает весь чип; затем прошейте все файлы заново.",
		KeyFlash:           "Прошить ESP",
		KeyFlashFiles:      "Файлы для прошивки",
		KeyNoFileSelected:  "Файл не выбран",
		KeyConsole:         "Консоль",
		KeyWarning:         "Внимание",
		KeyProjectError:    "Ошибка загрузки файла проекта",
		KeyEsptoolCommand:  "Команда esptool",
		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeyRestartRequired: "Новая команда esptool применится после перезапуска.",
		KeyBusy:            "Занято",
		KeyShowInFolder:    "Показать проект в папке",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:        "Gravador de Firmware ESP32",
		KeySettings:        "Configurações",
		KeyFile:            "Arquivo",
		KeyLanguage:        "Idioma",
		KeySerialPort:      "Porta serial",
		KeyRescan:          "Atualizar",
		KeyAutoDetect:      "Automático",
		KeyBaudRate:        "Taxa de transmissão",
		KeyProject:         "Arquivo de projeto",
		KeyBrowse:          "Navegar",
		KeySave:            "Salvar",
		KeyCancel:          "Cancelar",
		KeyErase:           "Apagar ESP",
		KeyEraseWarning:    "Apagar limpa o chip inteiro; grave todos os arquivos depois.",
		KeyFlash:           "Gravar ESP",
		KeyFlashFiles:      "Arquivos para gravar",
		KeyNoFileSelected:  "Nenhum arquivo selecionado",
		KeyConsole:         "Console",
		KeyWarning:         "Aviso",
		KeyProjectError:    "Erro ao carregar arquivo de projeto",
		KeyEsptoolCommand:  "Comando esptool",
		KeySettingsSaved:   "Configurações salvas com sucesso!",
		KeyRestartRequired: "O novo comando esptool vale após reiniciar.",
		KeyBusy:            "Ocupado",
		KeyShowInFolder:    "Mostrar projeto na pasta",
	}
}
