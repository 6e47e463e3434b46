package main

import "fmt"

type seedRow struct {
	subject  string
	year     string
	semester int
	branch   string
	title    string
	fileURL  string
	examDate string
	rating   float64
}

var seedData = map[string][]seedRow{
	"syllabus": {
		{"Engineering Mathematics I", "FE", 1, "", "Sem 1 Maths Syllabus", "https://files.musty.app/syllabus/fe-m1.pdf", "", 0},
		{"Engineering Physics", "FE", 1, "", "Sem 1 Physics Syllabus", "https://files.musty.app/syllabus/fe-phy.pdf", "", 0},
		{"Data Structures", "SE", 3, "COMP", "Sem 3 DS Syllabus", "https://files.musty.app/syllabus/se-ds.pdf", "", 0},
	},
	"pyqs": {
		{"Data Structures", "SE", 3, "COMP", "DS May 2025 Paper", "https://files.musty.app/pyqs/ds-may25.pdf", "2025-05-12", 0},
		{"Data Structures", "SE", 3, "COMP", "DS Dec 2024 Paper", "https://files.musty.app/pyqs/ds-dec24.pdf", "2024-12-10", 0},
	},
	"pyq_solutions": {
		{"Data Structures", "SE", 3, "COMP", "DS May 2025 Solutions", "https://files.musty.app/solutions/ds-may25.pdf", "2025-05-12", 0},
	},
	"question_banks": {
		{"Data Structures", "SE", 3, "COMP", "DS Important Questions", "https://files.musty.app/qbanks/ds.pdf", "", 0},
	},
	"peer_notes": {
		{"Data Structures", "SE", 3, "COMP", "Linked Lists Handwritten Notes", "https://files.musty.app/notes/ds-ll.pdf", "", 4.6},
		{"Data Structures", "SE", 3, "COMP", "Trees & Graphs Notes", "https://files.musty.app/notes/ds-trees.pdf", "", 4.2},
	},
}

// seed loads a small set of sample resources so the resource endpoints have
// something to return on a fresh database. Inserts are not idempotent.
func (cli *commandLine) seed() error {
	tx, err := cli.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for table, rows := range seedData {
		stmt := fmt.Sprintf(
			`INSERT INTO %s (subject, year, semester, branch, title, file_url, exam_date, rating, uploaded_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'seed')`, table)
		for _, r := range rows {
			if _, err = tx.Exec(stmt, r.subject, r.year, r.semester, r.branch, r.title, r.fileURL, r.examDate, r.rating); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
