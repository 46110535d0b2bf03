package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/filex"
	"github.com/dmitrijs2005/signbook/internal/services"
	"github.com/dmitrijs2005/signbook/internal/signature"
)

// userMessage turns a command error into something worth printing.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrSignatureRequired):
		return "please provide a signature image"
	case errors.Is(err, signature.ErrUnsupportedFormat):
		return "signature must be a PNG or JPEG image"
	case errors.Is(err, errEmptyInput):
		return "a value is required"
	default:
		return err.Error()
	}
}

// idFrom takes the id from the first argument, or prompts for it.
func (a *App) idFrom(args []string, prompt string) (int64, error) {
	if len(args) > 0 {
		return parseID(args[0])
	}
	return GetID(a.reader, prompt, a.prompts)
}

func (a *App) List(ctx context.Context) error {
	rows, err := a.records.List(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFULL NAME\tADDRESS\tSIGNATURE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s, %s\n", r.ID, r.FullName, r.Address,
			signature.ContentType(r.Signature), humanize.Bytes(uint64(len(r.Signature))))
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.idFrom(args, "Enter user id to show")
	if err != nil {
		return err
	}

	rec, err := a.records.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID: %d\nFull Name: %s\nAddress: %s\n", rec.ID, rec.FullName, rec.Address)

	info, err := signature.Inspect(rec.Signature)
	if err != nil {
		fmt.Fprintf(a.out, "Signature: %s (unreadable image)\n", humanize.Bytes(uint64(len(rec.Signature))))
		return nil
	}
	fmt.Fprintf(a.out, "Signature: %s %dx%d, %s\n", info.Format, info.Width, info.Height,
		humanize.Bytes(uint64(len(rec.Signature))))
	return nil
}

// readInput prompts for the three record fields. The signature is read
// from a file path.
func (a *App) readInput(namePrompt, addrPrompt, sigPrompt string) (services.RecordInput, error) {
	var in services.RecordInput
	var err error

	if in.FullName, err = GetSimpleText(a.reader, namePrompt, a.prompts); err != nil {
		return in, err
	}
	if in.Address, err = GetSimpleText(a.reader, addrPrompt, a.prompts); err != nil {
		return in, err
	}

	path, err := GetSimpleText(a.reader, sigPrompt, a.prompts)
	if err != nil {
		return in, err
	}
	if path == "" {
		return in, nil
	}
	in.Signature, err = filex.ReadFile(path, maxSignatureFile)
	return in, err
}

func (a *App) Add(ctx context.Context) error {
	in, err := a.readInput("Full Name", "Address", "Path to signature image (PNG or JPEG)")
	if err != nil {
		return err
	}

	id, err := a.records.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User added successfully (id %d)\n", id)
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	id, err := a.idFrom(args, "Enter user id to update")
	if err != nil {
		return err
	}

	in, err := a.readInput("New Full Name", "New Address", "Path to new signature image (PNG or JPEG)")
	if err != nil {
		return err
	}

	if err := a.records.Update(ctx, id, in); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("no user with id %d", id)
		}
		return err
	}
	fmt.Fprintln(a.out, "User updated successfully")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.idFrom(args, "Enter user id to delete")
	if err != nil {
		return err
	}

	if err := a.records.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("no user with id %d", id)
		}
		return err
	}
	fmt.Fprintln(a.out, "User deleted successfully")
	return nil
}

// Export writes a stored signature to disk. Without a path, or when the
// path names a directory (trailing separator), the file is called
// signature-<id> with the extension of the detected format.
func (a *App) Export(ctx context.Context, args []string) error {
	id, err := a.idFrom(args, "Enter user id to export")
	if err != nil {
		return err
	}

	rec, err := a.records.Get(ctx, id)
	if err != nil {
		return err
	}

	var path string
	if len(args) > 1 {
		path = args[1]
	}
	path = exportPath(path, rec.ID, rec.Signature)

	written, err := filex.WriteFile(path, rec.Signature)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signature written to %s\n", written)
	return nil
}

func exportPath(path string, id int64, sig []byte) string {
	if path != "" && !strings.HasSuffix(path, string(filepath.Separator)) && !strings.HasSuffix(path, "/") {
		return path
	}

	ext := ".bin"
	if f, err := signature.Detect(sig); err == nil {
		ext = f.Extension()
	}
	return filepath.Join(path, fmt.Sprintf("signature-%d%s", id, ext))
}
