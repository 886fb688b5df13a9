package db

// timeLayout is compatible with SQLite's date/time functions.
const timeLayout = "2006-01-02 15:04:05"
