package shell

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"
)

// Render writes the whole landing page to w.
func (s *Shell) Render(w io.Writer) error {
	st := s.State()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "TP")
	fmt.Fprintln(tw, renderTabs(st.ActiveTab))
	if st.Search != "" {
		fmt.Fprintf(tw, "Поиск: %s\n", st.Search)
	}
	if st.User != nil {
		fmt.Fprintf(tw, "[%s] %s  (logout)\n", initial(st.User.Username), st.User.Username)
	} else {
		fmt.Fprintln(tw, "ВХОД (login)  РЕГИСТРАЦИЯ (register)")
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Список разделов")
	for _, c := range s.content.Categories {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Name, c.Subtitle)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Последние посты")
	topics := s.VisibleTopics()
	if len(topics) == 0 {
		fmt.Fprintln(tw, "  ничего не найдено")
	}
	for _, t := range topics {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%d\t%s\n",
			topicMarkers(t), t.Title, t.Author, t.Replies, t.Views, t.LastReply)
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Пользователи онлайн (%d)\n", len(s.content.OnlineUsers))
	names := make([]string, 0, len(s.content.OnlineUsers))
	for _, u := range s.content.OnlineUsers {
		names = append(names, u.Username)
	}
	fmt.Fprintf(tw, "  %s\n", strings.Join(names, ", "))
	fmt.Fprintf(tw, "  Всего: %d (пользователей: %d, гостей: %d)\n",
		s.content.TotalOnline, len(s.content.OnlineUsers), s.content.Guests)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Сообщения профилей")
	for _, m := range s.content.ProfileMessages {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.Username, m.Message, m.Time)
	}

	return tw.Flush()
}

func renderTabs(active string) string {
	parts := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		if t.Name == active {
			parts = append(parts, "["+t.Name+"]")
		} else {
			parts = append(parts, t.Name)
		}
	}
	return strings.Join(parts, " ")
}

func topicMarkers(t Topic) string {
	var b strings.Builder
	if t.Pinned {
		b.WriteString("*")
	}
	if t.Closed {
		b.WriteString("x")
	}
	if t.Tag != "" {
		b.WriteString("[" + t.Tag + "]")
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func initial(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
