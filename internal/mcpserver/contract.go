package mcpserver

// NoteFormatContract describes the canonical Markdown note format that
// LLM consumers should follow when creating or updating notes.
const NoteFormatContract = `# Laguz Note Format Contract

Every Markdown note stored in Laguz MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title        # REQUIRED – used in search, sidebar, graph
tags:                               # OPTIONAL – YAML list; used for filtering
  - tag-one
  - tag-two
created: 2025-01-15                 # OPTIONAL – ISO-8601 date or datetime
---

Body text in standard Markdown.

Use [[wikilinks]] to reference other notes (without .md extension).
Use [[target|alias]] for display text that differs from the target.
Use [key::value] to attach typed inline properties anywhere in the body.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "```" + `---` + "```" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **` + "`" + `title` + "`" + ` field is required.** It is the primary display name everywhere.
3. **Tags** are lowercase, kebab-case (e.g. ` + "`" + `project-x` + "`" + `, ` + "`" + `meeting-notes` + "`" + `).
4. **Wikilinks** use double brackets: ` + "`" + `[[other-note]]` + "`" + `. The target is the
   filename stem (no ` + "`" + `.md` + "`" + ` extension, path separators OK: ` + "`" + `[[folder/note]]` + "`" + `).
5. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes.
6. **Encoding** is UTF-8 with a trailing newline.
7. **No HTML** unless absolutely necessary; prefer Markdown equivalents.

## Inline properties

Properties live directly in prose with a compact bracket notation:

- ` + "`" + `[status::reading]` + "`" + ` — one visible property.
- ` + "`" + `[rating:::5]` + "`" + ` — triple colon marks the property as hidden
  (stored and queryable, not rendered).
- ` + "`" + `[author::Cervantes, year::1605]` + "`" + ` — several pairs in one bracket
  span form a grouped record.
- Keys start with a letter and continue with letters, digits, or underscores.
- Values are typed automatically:
  - ` + "`" + `[author::@Jane Doe]` + "`" + ` — link to another note.
  - ` + "`" + `[done::true]` + "`" + ` — checkbox.
  - ` + "`" + `[pages::350]` + "`" + ` — number (no comma grouping; ` + "`" + `1,234` + "`" + ` becomes a list).
  - ` + "`" + `[due::2025-03-01]` + "`" + ` — date; ` + "`" + `[at::2025-03-01T09:00:00]` + "`" + ` — datetime.
  - ` + "`" + `[topics::#go, #parsing]` + "`" + ` — tags; ` + "`" + `[refs::@A, @B]` + "`" + ` — links;
    plain comma lists stay lists.
  - Anything else is text. Escape a literal comma inside a value with ` + "`" + `\,` + "`" + `.
- Brackets do not nest: the first ` + "`" + `]` + "`" + ` closes the span.

## Assets & Images

- Upload assets via the ` + "`" + `upload_asset` + "`" + ` tool. It returns a ` + "`" + `markdownImage` + "`" + ` field ready to paste into the note body.
- Assets are stored in the shared ` + "`" + `attachments/` + "`" + ` directory (flat, no sub-folders).
- Reference in notes using the absolute path: ` + "`" + `![description](/attachments/filename.png)` + "`" + `
- Supported formats: png, jpg, jpeg, gif, webp, svg, pdf.
- Do **not** use relative paths like ` + "`" + `./attachments/...` + "`" + ` — always use ` + "`" + `/attachments/filename` + "`" + `.

## Example

` + "```" + `markdown
---
title: Reading log
tags:
  - books
created: 2025-01-20
---

# Reading log

Currently on [[don-quijote]] [status::reading] [started::2025-01-12].

[title::Don Quijote, author::@Cervantes, year::1605]

![Cover scan](/attachments/quijote-cover.jpg)
` + "```" + `
`
