package journal

// Fixture is the seed dataset loaded once at process start. It stands in for
// the program's enrollment records; credentials are demo-only.
type Fixture struct {
	Students []Student
	Teachers []Teacher
	Sections map[SectionID]Section
}

// SeedFixture returns the initial journal contents.
func SeedFixture() Fixture {
	return Fixture{
		Students: []Student{
			{
				ID:       "1",
				Name:     "Anna Ivanova",
				Email:    "anna@example.com",
				Password: "student123",
				Sections: []SectionID{SectionActing, SectionSinging},
				Attendance: map[SectionID]map[string]bool{
					SectionActing:  {"2023-10-01": true, "2023-10-08": false},
					SectionSinging: {"2023-10-02": true, "2023-10-09": true},
				},
				Notes: map[SectionID]string{
					SectionActing:  "Handles sketch work very well",
					SectionSinging: "Good vocal range",
				},
				Grades: map[SectionID]map[string]Grade{
					SectionActing:  {"2023-10-01": 4, "2023-10-08": 5},
					SectionSinging: {"2023-10-02": 5, "2023-10-09": 4},
				},
			},
			{
				ID:       "2",
				Name:     "Ivan Petrov",
				Email:    "ivan@example.com",
				Password: "student123",
				Sections: []SectionID{SectionDancing, SectionSpeech},
				Attendance: map[SectionID]map[string]bool{
					SectionDancing: {"2023-10-03": true, "2023-10-10": true},
					SectionSpeech:  {"2023-10-04": false, "2023-10-11": true},
				},
				Notes: map[SectionID]string{
					SectionDancing: "Picks up new moves quickly",
					SectionSpeech:  "Needs to work on diction",
				},
				Grades: map[SectionID]map[string]Grade{
					SectionDancing: {"2023-10-03": 5, "2023-10-10": 5},
					SectionSpeech:  {"2023-10-04": 3, "2023-10-11": 4},
				},
			},
			{
				ID:       "3",
				Name:     "Maria Sidorova",
				Email:    "maria@example.com",
				Password: "student123",
				Sections: []SectionID{SectionActing, SectionDancing, SectionSpeech},
				Attendance: map[SectionID]map[string]bool{
					SectionActing:  {"2023-10-01": true, "2023-10-08": true},
					SectionDancing: {"2023-10-03": true, "2023-10-10": false},
					SectionSpeech:  {"2023-10-04": true, "2023-10-11": true},
				},
				Notes: map[SectionID]string{
					SectionActing:  "Excellent feel for character",
					SectionDancing: "Good plasticity",
					SectionSpeech:  "Expressive delivery",
				},
				Grades: map[SectionID]map[string]Grade{
					SectionActing:  {"2023-10-01": 5, "2023-10-08": 5},
					SectionDancing: {"2023-10-03": 4, "2023-10-10": Ungraded},
					SectionSpeech:  {"2023-10-04": 4, "2023-10-11": 5},
				},
			},
		},
		Teachers: []Teacher{
			{ID: "teacher1", Name: "Alexander Viktorovich", Email: "alex@example.com", Password: "teacher123", Sections: []SectionID{SectionActing}},
			{ID: "teacher2", Name: "Elena Sergeevna", Email: "elena@example.com", Password: "teacher123", Sections: []SectionID{SectionSinging}},
			{ID: "teacher3", Name: "Natalia Andreevna", Email: "natalia@example.com", Password: "teacher123", Sections: []SectionID{SectionSpeech}},
			{ID: "teacher4", Name: "Sergey Petrovich", Email: "sergey@example.com", Password: "teacher123", Sections: []SectionID{SectionDancing}},
		},
		Sections: map[SectionID]Section{
			SectionActing: {
				ID:          SectionActing,
				Name:        "Acting",
				Description: "Acting technique, sketch work, stage movement",
				Schedule:    "Sunday, 10:00-12:00",
				Teacher:     "Alexander Viktorovich",
			},
			SectionSinging: {
				ID:          SectionSinging,
				Name:        "Singing",
				Description: "Vocals, breathing technique, ear training",
				Schedule:    "Monday, 15:00-17:00",
				Teacher:     "Elena Sergeevna",
			},
			SectionSpeech: {
				ID:          SectionSpeech,
				Name:        "Stage Speech",
				Description: "Diction, voice production, public speaking",
				Schedule:    "Wednesday, 16:00-18:00",
				Teacher:     "Natalia Andreevna",
			},
			SectionDancing: {
				ID:          SectionDancing,
				Name:        "Dance",
				Description: "Choreography, plasticity, rhythmics",
				Schedule:    "Tuesday, 18:00-20:00",
				Teacher:     "Sergey Petrovich",
			},
		},
	}
}
