package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/dolphin/internal/editor"
	"github.com/rogersnm/dolphin/internal/markdown"
	"github.com/rogersnm/dolphin/internal/model"
	"github.com/rogersnm/dolphin/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// fields is the constraint on writable field structs.
type fields interface {
	comparable
	Validate() error
}

type entity[T any, F any] interface {
	store.Entity[T]
	Draft() model.Draft[F]
}

// field binds one writable string field to a flag and a form input. The
// flag name is key with dashes.
type field[F any] struct {
	key   string
	title string
	long  bool
	ptr   func(*F) *string
}

func (f field[F]) flag() string { return strings.ReplaceAll(f.key, "_", "-") }

// resource describes the command tree of one REST collection.
type resource[T entity[T, F], F fields] struct {
	use   string
	short string
	api   store.Resource
	image bool
	// batch lets create --from read an items list and create each entry.
	batch    bool
	fields   []field[F]
	table    func([]T) string
	header   func(T) (string, []string)
	sections func(T) []markdown.Section
}

type termNotifier struct{ w io.Writer }

func (n termNotifier) Success(msg string) { fmt.Fprintln(n.w, markdown.RenderSuccess(msg)) }
func (n termNotifier) Failure(msg string) { fmt.Fprintln(n.w, markdown.RenderFailure(msg)) }

// lockedWriter serializes writes from concurrent store operations.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (r *resource[T, F]) store(cmd *cobra.Command) *store.Store[T, F] {
	return r.newStore(termNotifier{cmd.ErrOrStderr()})
}

func (r *resource[T, F]) newStore(n store.Notifier) *store.Store[T, F] {
	s := store.New[T, F](client, r.api, store.WithNotifier(n))
	s.Subscribe(func(st store.State[T]) {
		logger.Debug().
			Str("resource", r.use).
			Stringer("status", st.Status).
			Int("cached", len(st.List)).
			Uint64("version", st.Version).
			Msg("store state")
	})
	return s
}

func (r *resource[T, F]) command() *cobra.Command {
	root := &cobra.Command{Use: r.use, Short: r.short}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + r.api.Plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := r.store(cmd).List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.table(items))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show " + r.api.Singular + " details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.store(cmd).Get(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			return r.render(cmd.OutOrStdout(), v)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + r.api.Singular,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from, _ := cmd.Flags().GetString("from"); r.batch && from != "" {
				drafts, err := markdown.ReadBatch[F](from)
				if err != nil {
					return err
				}
				if len(drafts) > 0 {
					return r.createBatch(cmd, drafts)
				}
			}
			d, done, err := r.collect(cmd, model.Draft[F]{})
			if err != nil {
				return err
			}
			defer done()
			v, err := r.store(cmd).Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", r.api.Singular, v.EntityID())
			return nil
		},
	}
	r.draftFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + r.api.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.ID(args[0])
			s := r.store(cmd)
			cur, err := s.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			d, done, err := r.collect(cmd, cur.Draft())
			if err != nil {
				return err
			}
			defer done()
			if _, err := s.Update(cmd.Context(), id, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", r.api.Singular, id)
			return nil
		},
	}
	r.draftFlags(update)

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a " + r.api.Singular + " in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.edit(cmd, model.ID(args[0]))
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + r.api.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.ID(args[0])
			if err := confirmDelete(cmd, r.api.Singular+" "+id.String()); err != nil {
				return err
			}
			if err := r.store(cmd).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", r.api.Singular, id)
			return nil
		},
	}
	del.Flags().BoolP("force", "f", false, "skip confirmation")

	root.AddCommand(list, show, create, update, edit, del)
	return root
}

func (r *resource[T, F]) draftFlags(c *cobra.Command) {
	for _, f := range r.fields {
		c.Flags().String(f.flag(), "", f.title)
	}
	if r.image {
		c.Flags().String("image", "", "path of a new image to upload")
	}
	c.Flags().String("from", "", "read fields from a markdown draft file with YAML frontmatter")
}

// collect merges --from, field flags and --image into base. With none of
// them and an interactive terminal it runs a form instead. The returned
// func closes the image file, if any.
func (r *resource[T, F]) collect(cmd *cobra.Command, base model.Draft[F]) (model.Draft[F], func(), error) {
	d := base
	provided := false
	var imagePath string

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		doc, err := markdown.ReadDraft[F](from)
		if err != nil {
			return d, nil, err
		}
		d.Fields = doc.Fields
		imagePath = doc.Image
		provided = true
	}
	for _, f := range r.fields {
		if cmd.Flags().Changed(f.flag()) {
			v, _ := cmd.Flags().GetString(f.flag())
			*f.ptr(&d.Fields) = v
			provided = true
		}
	}
	if r.image {
		if p, _ := cmd.Flags().GetString("image"); p != "" {
			imagePath = p
			provided = true
		}
	}

	if !provided {
		if !stdinIsTerminal() {
			return d, nil, fmt.Errorf("no fields given: pass flags or --from, or run in a terminal")
		}
		var err error
		if imagePath, err = r.form(&d.Fields); err != nil {
			return d, nil, err
		}
	}

	d.Fields = model.Trim(d.Fields)
	if err := d.Fields.Validate(); err != nil {
		return d, nil, err
	}
	return attachImage(d, imagePath)
}

// createBatch creates every draft that validates, concurrently. The others
// are skipped with a warning.
func (r *resource[T, F]) createBatch(cmd *cobra.Command, drafts []markdown.Draft[F]) error {
	errOut := &lockedWriter{w: cmd.ErrOrStderr()}
	var ready []model.Draft[F]
	for i, doc := range drafts {
		fields := model.Trim(doc.Fields)
		if err := fields.Validate(); err != nil {
			fmt.Fprintln(errOut, markdown.RenderFailure(fmt.Sprintf("Skipping %s %d: %v", r.api.Singular, i+1, err)))
			continue
		}
		if !r.image {
			doc.Image = ""
		}
		d, done, err := attachImage(model.Draft[F]{Fields: fields}, doc.Image)
		if err != nil {
			return err
		}
		defer done()
		ready = append(ready, d)
	}
	if len(ready) == 0 {
		return fmt.Errorf("no complete %s to create", r.api.Plural)
	}

	s := r.newStore(termNotifier{errOut})
	created := make([]model.ID, len(ready))
	var g errgroup.Group
	for i, d := range ready {
		g.Go(func() error {
			v, err := s.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			created[i] = v.EntityID()
			return nil
		})
	}
	err := g.Wait()
	for _, id := range created {
		if id != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", r.api.Singular, id)
		}
	}
	return err
}

func attachImage[F any](d model.Draft[F], path string) (model.Draft[F], func(), error) {
	if path == "" {
		return d, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return d, nil, fmt.Errorf("opening image: %w", err)
	}
	d.Image.File = &model.File{Name: filepath.Base(path), Content: f}
	return d, func() { f.Close() }, nil
}

// form edits fields interactively until they validate. It returns the
// image path entered, if any.
func (r *resource[T, F]) form(values *F) (string, error) {
	var imagePath string
	for {
		inputs := make([]huh.Field, 0, len(r.fields)+1)
		for _, f := range r.fields {
			if f.long {
				inputs = append(inputs, huh.NewText().Title(f.title).Value(f.ptr(values)))
			} else {
				inputs = append(inputs, huh.NewInput().Title(f.title).Value(f.ptr(values)))
			}
		}
		if r.image {
			inputs = append(inputs, huh.NewInput().Title("Image path (optional)").Value(&imagePath))
		}
		if err := huh.NewForm(huh.NewGroup(inputs...)).Run(); err != nil {
			return "", err
		}

		err := model.Trim(*values).Validate()
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			return imagePath, err
		}
		for _, f := range r.fields {
			if msg, ok := ve.Fields[f.key]; ok {
				fmt.Fprintln(os.Stderr, markdown.RenderFailure(f.title+": "+msg))
			}
		}
	}
}

func (r *resource[T, F]) edit(cmd *cobra.Command, id model.ID) error {
	s := r.store(cmd)
	cur, err := s.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	d := cur.Draft()

	path, cleanup, err := editor.Edit(fmt.Sprintf("%s-%s.md", r.api.Singular, id), func(p string) error {
		return markdown.WriteDraft(p, markdown.Draft[F]{Fields: d.Fields})
	})
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := markdown.ReadDraft[F](path)
	if err != nil {
		return err
	}
	edited := model.Trim(doc.Fields)
	if edited == d.Fields && doc.Image == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes")
		return nil
	}
	if err := edited.Validate(); err != nil {
		return err
	}
	d.Fields = edited
	d, done, err := attachImage(d, doc.Image)
	if err != nil {
		return err
	}
	defer done()

	if _, err := s.Update(cmd.Context(), id, d); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", r.api.Singular, id)
	return nil
}

func (r *resource[T, F]) render(w io.Writer, v T) error {
	title, fields := r.header(v)
	fmt.Fprint(w, markdown.RenderEntityHeader(title, fields))
	if r.sections == nil {
		return nil
	}
	out, err := markdown.RenderSections(r.sections(v))
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}

func confirmDelete(cmd *cobra.Command, what string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	if !stdinIsTerminal() {
		return fmt.Errorf("refusing to delete %s without --force", what)
	}
	var confirm bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %s?", what)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirm).
		Run()
	if err != nil || !confirm {
		return fmt.Errorf("deletion cancelled")
	}
	return nil
}
