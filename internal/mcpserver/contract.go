package mcpserver

// OccasionFormatContract describes the occasion file format that LLM
// consumers should follow when creating or extending occasion files.
const OccasionFormatContract = `# jcal Occasion File Format

Occasions (holidays, anniversaries, events) live in YAML files in the
occasion directory. Every file follows this structure:

` + "```" + `yaml
title: Official holidays        # OPTIONAL – defaults to the file name
occasions:
  - date: "01-01"               # REQUIRED – Jalali MM-DD, repeats every year
    title: Nowruz               # REQUIRED – 1..200 characters
    holiday: true               # OPTIONAL – marks a day off
  - date: "1403-09-22"          # Jalali YYYY-MM-DD, a single year only
    title: Ashura
    holiday: true
` + "```" + `

## Rules

1. **Dates are Jalali (Solar Hijri).** Months run 1..12 starting with Farvardin.
   Use ` + "`" + `to_jalali` + "`" + ` to convert a Gregorian date first.
2. **Quote dates** so YAML does not read them as numbers.
3. **Day ranges:** months 1–6 have 31 days, 7–11 have 30, Esfand (12) has 29
   or 30 in leap years. ` + "`" + `12-30` + "`" + ` is accepted for recurring occasions and shown only
   in leap years.
4. **File paths** end with ` + "`" + `.yaml` + "`" + ` or ` + "`" + `.yml` + "`" + ` and use forward slashes.
   Names starting with a dot are ignored.
5. **Invalid entries** are skipped, not fatal; a YAML syntax error skips the whole file.
6. **Fridays** are days off on their own; do not list them.

Prefer the ` + "`" + `add_occasion` + "`" + ` tool over writing files by hand: it validates the
entry and keeps the file in canonical form.
`
