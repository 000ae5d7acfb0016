package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    id        INTEGER PRIMARY KEY,
    date      TEXT,
    category  TEXT,
    amount    REAL
);
`
