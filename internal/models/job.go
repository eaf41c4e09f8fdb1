package models

// Job is one scraped posting. Field order matches the dataset columns.
type Job struct {
	ID       string `json:"job_id"`
	Name     string `json:"job_name"`
	Company  string `json:"company_name"`
	Location string `json:"job_location"`
	Link     string `json:"job_link"`
}

// Complete reports whether every field carries a value.
func (j Job) Complete() bool {
	return j.ID != "" && j.Name != "" && j.Company != "" && j.Location != "" && j.Link != ""
}
