package postgres

import "time"

// Student is a registered student, keyed by SRN.
type Student struct {
	StudentID    string  `gorm:"primaryKey;type:varchar(13);column:student_id"`
	Name         string  `gorm:"type:varchar(100);column:name"`
	PhoneNo      string  `gorm:"type:varchar(15);column:phone_no"`
	Gender       string  `gorm:"type:varchar(10);column:gender"`
	Age          int     `gorm:"column:age"`
	Email        string  `gorm:"type:varchar(255);column:email"`
	Sem          int     `gorm:"column:sem"`
	CGPA         float64 `gorm:"type:numeric(4,2);column:cgpa"`
	Degree       string  `gorm:"column:degree"`
	Stream       string  `gorm:"column:stream"`
	MentorID     int     `gorm:"column:mentor_id"`
	Mentor       Mentor  `gorm:"foreignKey:MentorID"`
	GithubLink   string  `gorm:"type:text;column:github_link"`
	LeetcodeLink string  `gorm:"type:text;column:leetcode_link"`
	Linkedin     string  `gorm:"type:text;column:linkedin"`
	Resume       string  `gorm:"type:text;column:resume"`
	CreatedAt    time.Time
}

func (Student) TableName() string {
	return "student"
}

// Mentor is looked up by name; registration creates it on first use.
type Mentor struct {
	MentorID int    `gorm:"primaryKey;autoIncrement;column:mentor_id"`
	Name     string `gorm:"type:varchar(100);uniqueIndex;column:mentor_name"`
}

func (Mentor) TableName() string {
	return "mentor"
}

// MentorSession is one recorded mentoring session.
type MentorSession struct {
	ID        uint      `gorm:"primaryKey"`
	MentorID  int       `gorm:"column:mentor_id;index"`
	Mentor    Mentor    `gorm:"foreignKey:MentorID"`
	StudentID string    `gorm:"column:student_id;index"`
	Student   Student   `gorm:"foreignKey:StudentID"`
	Date      time.Time `gorm:"type:date;column:date"`
	Advice    string    `gorm:"type:text;column:advice"`
	CreatedAt time.Time
}

func (MentorSession) TableName() string {
	return "mentor_sessions"
}
