package sqlite

// Schema DDL for all tables. Every table carries an AUTOINCREMENT seq column
// so listings and first-match lookups follow insertion order.
const (
	createProducts = `CREATE TABLE products (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    price TEXT NOT NULL,
    stock INTEGER NOT NULL
);`

	createBooks = `CREATE TABLE books (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    checked_out INTEGER NOT NULL DEFAULT 0
);`

	createLoans = `CREATE TABLE loans (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    borrower TEXT NOT NULL,
    title TEXT NOT NULL
);`

	createStudents = `CREATE TABLE students (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL
);`

	createGrades = `CREATE TABLE grades (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    subject TEXT NOT NULL,
    score REAL NOT NULL,
    FOREIGN KEY (student_id) REFERENCES students(student_id)
);`

	createTasks = `CREATE TABLE tasks (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0
);`
)

// Index DDL for common queries.
const (
	idxLoansBorrower = `CREATE INDEX idx_loans_borrower ON loans(borrower);`
	idxBooksTitle    = `CREATE INDEX idx_books_title ON books(title);`
	idxGradesStudent = `CREATE INDEX idx_grades_student ON grades(student_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createProducts,
	createBooks,
	createLoans,
	createStudents,
	createGrades,
	createTasks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLoansBorrower,
	idxBooksTitle,
	idxGradesStudent,
}
