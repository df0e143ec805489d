package shell

// Category is a section tile on the landing page.
type Category struct {
	Name     string
	Subtitle string
}

type Topic struct {
	ID        int
	Title     string
	Author    string
	Category  string
	Replies   int
	Views     int
	LastReply string
	Pinned    bool
	Closed    bool
	Tag       string
}

type OnlineUser struct {
	ID       int
	Username string
	Status   string
}

type ProfileMessage struct {
	ID       int
	Username string
	Message  string
	Time     string
}

// Content is the static data shown by the shell.
type Content struct {
	Categories      []Category
	Topics          []Topic
	OnlineUsers     []OnlineUser
	ProfileMessages []ProfileMessage
	TotalOnline     int
	Guests          int
}

// SampleContent returns the built-in landing page data.
func SampleContent() Content {
	return Content{
		Categories: []Category{
			{Name: "СБОРКИ", Subtitle: "готовые сервера"},
			{Name: "ПЛАГИНЫ", Subtitle: "новые"},
			{Name: "ПЛАГИНЫ", Subtitle: "платные"},
			{Name: "СТАТЬИ", Subtitle: "всё о сервере"},
			{Name: "ТР ПЛАГИНЫ", Subtitle: "плагины"},
		},
		Topics: []Topic{
			{ID: 1, Title: "Превиум сборка RUST только для достойных серверов! [Paid]", Author: "Sempai", Category: "СБОРКА", Replies: 25, Views: 1205, LastReply: "Закреплено", Pinned: true, Tag: "СБОРКА"},
			{ID: 2, Title: "Изящный дизайн для GameStores Time Rust [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Закреплено", Pinned: true},
			{ID: 3, Title: "DeathMessages by VooDoo [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Вчера в 21:05", Tag: "НОВЫЕ"},
			{ID: 4, Title: "ServerV Reforged [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Вчера в 19:56", Tag: "НОВЫЕ"},
			{ID: 5, Title: "TPBPass [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Четверг в 19:11", Tag: "НОВЫЕ"},
			{ID: 6, Title: "Routink [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Среда в 19:13", Tag: "НОВЫЕ"},
			{ID: 7, Title: "Space [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Среда в 19:12", Tag: "НОВЫЕ"},
			{ID: 8, Title: "Traffic Drivers [Paid]", Author: "Sempai", Category: "НОВЫЕ", LastReply: "Среда в 19:09", Tag: "НОВЫЕ"},
		},
		OnlineUsers: []OnlineUser{
			{ID: 1, Username: "saluaDST", Status: "online"},
			{ID: 2, Username: "ParagunRAID", Status: "online"},
			{ID: 3, Username: "kegi", Status: "online"},
			{ID: 4, Username: "Sanckev", Status: "online"},
			{ID: 5, Username: "ki_kboycs", Status: "online"},
			{ID: 6, Username: "KANK", Status: "online"},
			{ID: 7, Username: "Araryyy", Status: "online"},
			{ID: 8, Username: "aleeeeee", Status: "online"},
			{ID: 9, Username: "Safythew", Status: "online"},
		},
		ProfileMessages: []ProfileMessage{
			{ID: 1, Username: "Sempai", Message: "В ночь обновлю все плагины", Time: "6 Ноя 2025"},
			{ID: 2, Username: "unluck4x1", Message: "дружище, скинешь свой дискорд, или добавь меня: un1 вя ная хели", Time: "5 Ноя 2025"},
			{ID: 3, Username: "YONG", Message: "Привет прими в ДС.", Time: "22 Окт 2025"},
			{ID: 4, Username: "Sempai", Message: "Пишите если что-то не работает!", Time: "2 Окт 2025"},
			{ID: 5, Username: "Sempai", Message: "До утра пострались, все плагины обновлю!", Time: "4 Сен 2025"},
		},
		TotalOnline: 59,
		Guests:      50,
	}
}
