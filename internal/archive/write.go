package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openbcf/bcf/internal/atomicfile"
	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/xmltree"
)

// Update is one pending field-level change: the touched node plus the value
// it held before, kept in submission order. Previous is carried for
// diagnostics; the node itself already holds the new value.
type Update struct {
	Node     model.Node
	Previous any
}

// CommitError reports the first update that could not be written.
type CommitError struct {
	Node model.Node
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s: %v", e.Node.XMLTag(), e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// ApplyUpdates reconciles pending updates into the scratch directory in
// submission order, rewriting only the files that own dirty nodes. On the
// first failure it stops and returns a CommitError naming the node; files
// written before the failure stay written, the caller restores consistency
// by rolling the model back and leaving the zip untouched.
func (a *Archive) ApplyUpdates(updates []Update) error {
	for _, u := range updates {
		if err := a.applyOne(u.Node); err != nil {
			return &CommitError{Node: u.Node, Err: err}
		}
	}
	return nil
}

func (a *Archive) applyOne(n model.Node) error {
	markup := model.ContainingMarkup(n)
	if markup == nil {
		return a.writeProjectFile()
	}

	dir := a.TopicDir(markup)
	if markup.State() == model.Deleted {
		return os.RemoveAll(dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create topic dir: %w", err)
	}

	// A freshly added markup materializes its whole directory: markup.bcf
	// plus every loaded viewpoint file.
	if m, ok := n.(*model.Markup); ok && m.State() == model.Added {
		if err := a.writeMarkupFile(m); err != nil {
			return err
		}
		for _, ref := range m.Viewpoints() {
			if err := a.writeViewpointFile(dir, ref); err != nil {
				return err
			}
		}
		return nil
	}

	// A deleted viewpoint reference takes its .bcfv and snapshot files with
	// it; the dropped XML node alone would leave orphans in the zip.
	if ref, ok := n.(*model.ViewpointReference); ok && ref.State() == model.Deleted {
		if err := removeViewpointFiles(dir, ref); err != nil {
			return err
		}
		return a.writeMarkupFile(markup)
	}

	// Changes inside a loaded viewpoint touch only its .bcfv file.
	if ref := owningViewpointRef(n); ref != nil {
		return a.writeViewpointFile(dir, ref)
	}

	return a.writeMarkupFile(markup)
}

// WriteAll rewrites every file of the project unconditionally. Used when
// deriving a fresh archive rather than reconciling changes.
func (a *Archive) WriteAll() error {
	if err := a.writeProjectFile(); err != nil {
		return err
	}
	for _, m := range a.Project.Markups() {
		if err := os.MkdirAll(a.TopicDir(m), 0o755); err != nil {
			return fmt.Errorf("create topic dir: %w", err)
		}
		if err := a.writeMarkupFile(m); err != nil {
			return err
		}
		for _, ref := range m.Viewpoints() {
			if err := a.writeViewpointFile(a.TopicDir(m), ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Archive) writeProjectFile() error {
	return writeElement(filepath.Join(a.Dir, ProjectFile), a.Project.Element())
}

func (a *Archive) writeMarkupFile(m *model.Markup) error {
	return writeElement(filepath.Join(a.TopicDir(m), MarkupFile), m.Element())
}

func (a *Archive) writeViewpointFile(dir string, ref *model.ViewpointReference) error {
	if ref.Viewpoint() == nil || ref.File() == "" {
		return nil
	}
	return writeElement(filepath.Join(dir, string(ref.File())), ref.Viewpoint().Element())
}

func writeElement(path string, root *xmltree.Element) error {
	data, err := xmltree.Marshal(root)
	if err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func removeViewpointFiles(dir string, ref *model.ViewpointReference) error {
	for _, name := range []model.Uri{ref.File(), ref.Snapshot()} {
		if name == "" {
			continue
		}
		if err := os.Remove(filepath.Join(dir, string(name))); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// owningViewpointRef returns the viewpoint reference whose loaded content
// contains n, or nil when n is not part of any .bcfv subtree.
func owningViewpointRef(n model.Node) *model.ViewpointReference {
	for cur := n; cur != nil; cur = cur.Parent() {
		if vp, ok := cur.(*model.Viewpoint); ok {
			ref, _ := vp.Parent().(*model.ViewpointReference)
			return ref
		}
	}
	return nil
}
