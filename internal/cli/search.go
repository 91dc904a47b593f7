package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/devindex/internal/client/fragment"
	"github.com/kailas-cloud/devindex/internal/client/httpclient"
	"github.com/kailas-cloud/devindex/internal/client/planner"
	"github.com/kailas-cloud/devindex/internal/client/session"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

// settleTimeout bounds the wait for one fetch in the terminal client.
const settleTimeout = 30 * time.Second

func newSearchCommand(a *app) *cobra.Command {
	var (
		query      string
		categories []string
		pages      int
		link       string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a running devindex server",
		Long: `Search runs the interactive client against the configured server. With -q it
prints the requested pages and exits; otherwise it reads commands from stdin:

  <text>            set the query
  :cat a,b          select categories (empty clears)
  :toggle <label>   select only this category, or clear it
  :add <label>      add a category to the selection
  :more             load the next page
  :quit             exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := planner.New(a.cfg.Search.CategoryAliases, a.cfg.Index.PageSize)
			if err != nil {
				return err
			}
			var opts []httpclient.Option
			if a.cfg.Search.APIKey != "" {
				opts = append(opts, httpclient.WithAPIKey(a.cfg.Search.APIKey))
			}
			client, err := httpclient.New(a.cfg.Search.ServerURL, opts...)
			if err != nil {
				return err
			}

			if link != "" {
				if query, err = fragment.FromURL(link); err != nil {
					return err
				}
			}

			r := newREPL(cmd.Context(), p, client, cmd.OutOrStdout(),
				time.Duration(a.cfg.Search.DebounceMs)*time.Millisecond)
			defer r.close()

			if query != "" {
				return r.once(query, categories, pages)
			}
			return r.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "query to run once")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "category labels to filter by")
	cmd.Flags().IntVar(&pages, "pages", 1, "pages to load with -q")
	cmd.Flags().StringVar(&link, "link", "", "restore the query from a shared link's #search fragment")
	return cmd
}

// repl drives a session from line commands and prints each settled result set.
type repl struct {
	sess    *session.Session
	out     io.Writer
	settled chan session.Snapshot
}

func newREPL(ctx context.Context, p *planner.Planner, f session.Fetcher, out io.Writer, debounce time.Duration) *repl {
	r := &repl{out: out, settled: make(chan session.Snapshot, 1)}
	r.sess = session.New(ctx, p, f,
		session.WithDebounce(debounce),
		session.OnChange(r.onChange),
	)
	return r
}

func (r *repl) onChange(s session.Snapshot) {
	if s.State != session.Loaded && s.State != session.Failed {
		return
	}
	// Keep only the latest settled snapshot.
	select {
	case <-r.settled:
	default:
	}
	select {
	case r.settled <- s:
	default:
	}
}

func (r *repl) close() { r.sess.Close() }

// once runs query, loads up to pages pages and prints them.
func (r *repl) once(query string, categories []string, pages int) error {
	r.sess.SetCategories(categories...)
	r.sess.SetQuery(query)
	r.sess.Flush()
	snap, err := r.wait()
	if err != nil {
		return err
	}
	for i := 1; i < pages && snap.HasMore; i++ {
		if !r.sess.LoadMore() {
			break
		}
		if snap, err = r.wait(); err != nil {
			return err
		}
	}
	r.print(snap)
	return snap.Err
}

func (r *repl) run(in io.Reader) error {
	fmt.Fprintln(r.out, "type a query, :more, :cat a,b, :toggle x, :add x or :quit")
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == ":quit" || line == ":q" {
			return nil
		}
		if !r.apply(line) {
			continue
		}
		snap, err := r.wait()
		if err != nil {
			return err
		}
		r.print(snap)
	}
	return scanner.Err()
}

// apply executes one command line and reports whether a fetch is now expected.
func (r *repl) apply(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":more":
		if !r.sess.LoadMore() {
			fmt.Fprintln(r.out, "no more results")
			return false
		}
		return true
	case ":cat":
		var labels []string
		for _, l := range strings.Split(arg, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
		r.sess.SetCategories(labels...)
	case ":toggle":
		r.sess.ToggleCategory(arg)
	case ":add":
		r.sess.AddCategory(arg)
	default:
		r.sess.SetQuery(line)
	}
	return r.sess.Flush()
}

func (r *repl) wait() (session.Snapshot, error) {
	select {
	case s := <-r.settled:
		return s, nil
	case <-time.After(settleTimeout):
		return session.Snapshot{}, fmt.Errorf("search did not settle within %s", settleTimeout)
	}
}

func (r *repl) print(s session.Snapshot) {
	if s.State == session.Failed {
		fmt.Fprintf(r.out, "search failed: %v\n", s.Err)
		return
	}
	if link := fragment.Encode(s.Query); link != "" {
		fmt.Fprintf(r.out, "link: %s\n", link)
	}
	for _, d := range s.Hits {
		fmt.Fprintln(r.out, formatHit(d))
	}
	more := ""
	if s.HasMore {
		more = " (:more for next page)"
	}
	fmt.Fprintf(r.out, "%d of %d results%s\n", len(s.Hits), s.Total, more)
	if len(s.Facets) > 0 {
		fmt.Fprintf(r.out, "by category: %v\n", s.Facets)
	}
}

func formatHit(d document.Document) string {
	b := d.Common()
	line := fmt.Sprintf("  [%s] %s  %s", b.Category, b.Name, b.Path)
	switch v := d.(type) {
	case document.Snippet:
		if v.Code != "" {
			line += "  " + v.Code
		}
	case document.Icon:
		line += "  " + v.Image
	}
	return line
}
