package site

// Service is a card on the services page.
type Service struct {
	ID    string
	Label string
	Icon  string
}

// Project is a portfolio entry.
type Project struct {
	Title       string
	Description string
	Tags        []string
}

// ProcessStep is one stage of the delivery timeline.
type ProcessStep struct {
	Title       string
	Description string
}

// Stat is a headline number on the about page.
type Stat struct {
	Value string
	Label string
}

// Data is the structured content the page widgets draw from.
type Data struct {
	Services []Service
	Projects []Project
	Process  []ProcessStep
	Features []string
	Stats    []Stat

	// CountdownHours is the length of the offer timer on the home page.
	CountdownHours int
}

// DefaultData returns the studio's published content.
func DefaultData() Data {
	return Data{
		Services: []Service{
			{ID: "landing", Label: "Лендинг", Icon: "🚀"},
			{ID: "corporate", Label: "Корпоративный", Icon: "🏢"},
			{ID: "ecommerce", Label: "Интернет-магазин", Icon: "🛒"},
			{ID: "lms", Label: "LMS-платформа", Icon: "🎓"},
			{ID: "pwa", Label: "PWA / Web App", Icon: "📱"},
			{ID: "blog", Label: "Блог/Портал", Icon: "📰"},
			{ID: "marketplace", Label: "Маркетплейс", Icon: "🏬"},
			{ID: "seo", Label: "SEO-оптимизация", Icon: "🔍"},
			{ID: "speed", Label: "Оптимизация", Icon: "⚡"},
			{ID: "automation", Label: "Автоматизация", Icon: "🤖"},
			{ID: "cms", Label: "CMS-интеграция", Icon: "🧩"},
			{ID: "support", Label: "Техподдержка", Icon: "🛠"},
		},
		Projects: []Project{
			{Title: "Corporate Site for “Тектоника”", Description: "Адаптивный сайт с интерактивной картой и админ-панелью.", Tags: []string{"corporate", "cms"}},
			{Title: "Online Store “Иезиль”", Description: "E-commerce платформа с корзиной и фильтрами.", Tags: []string{"ecommerce"}},
			{Title: "Music Service “Фи.Музыка”", Description: "Плеер, регистрация, drag’n’drop загрузка треков.", Tags: []string{"pwa"}},
			{Title: "LMS Platform ManyIQ", Description: "Система уроков, тестов и прогресса студентов.", Tags: []string{"lms"}},
		},
		Process: []ProcessStep{
			{Title: "Дизайн", Description: "Создаём макет, подбираем цвета, типографику и UX."},
			{Title: "Разработка", Description: "Верстаем и программируем логику на React + TS."},
			{Title: "Интеграция", Description: "Подключаем CMS, API и настраиваем бэкенд."},
			{Title: "Тестирование", Description: "Проводим кросс-браузерное и юзабилити-тесты."},
			{Title: "Деплой", Description: "Запускаем проект в продакшн, настраиваем домен."},
		},
		Features: []string{
			"Индивидуальный подход",
			"Прозрачность процессов",
			"Современный стек",
			"Гарантия качества",
		},
		Stats: []Stat{
			{Value: "200+", Label: "завершённых проектов"},
			{Value: "98%", Label: "удовлетворённость клиентов"},
			{Value: "5", Label: "лет на рынке"},
			{Value: "50+", Label: "сертифицированных специалистов"},
		},
		CountdownHours: 24,
	}
}
