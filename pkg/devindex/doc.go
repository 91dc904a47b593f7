// Package devindex is a Go client for a devindex search server.
//
// It plans each call the same way the interactive client does: UI labels are resolved
// through the alias table, several categories become an OR filter, pages are fixed-size
// and per-category counts come back with every page.
//
//	client, _ := devindex.New("http://localhost:8080", devindex.WithAPIKey(key))
//	page, _ := client.Search(ctx, "git log", 1, "tldr", "cheatsheets")
//	for page.HasMore {
//	    page, _ = client.Search(ctx, "git log", page.Number+1, "tldr", "cheatsheets")
//	}
package devindex
