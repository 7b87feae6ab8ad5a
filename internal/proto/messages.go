package proto

// Record is the wire form of one roster record.
type Record struct {
	Id         string `json:"id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	RegNumber  string `json:"reg_number,omitempty"`
	PageNumber string `json:"page_number,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
}

func (x *Record) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status,omitempty"`
}

func (x *PingResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

type ListRequest struct{}

type ListResponse struct {
	Records []*Record `json:"records,omitempty"`
}

func (x *ListResponse) GetRecords() []*Record {
	if x != nil {
		return x.Records
	}
	return nil
}

type CreateRequest struct {
	Record *Record `json:"record,omitempty"`
}

func (x *CreateRequest) GetRecord() *Record {
	if x != nil {
		return x.Record
	}
	return nil
}

type CreateResponse struct {
	Id string `json:"id,omitempty"`
}

func (x *CreateResponse) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

// UpdateRequest carries the new editable fields in Record; Record.Id and
// Record.CreatedAt are ignored.
type UpdateRequest struct {
	Id     string  `json:"id,omitempty"`
	Record *Record `json:"record,omitempty"`
}

func (x *UpdateRequest) GetRecord() *Record {
	if x != nil {
		return x.Record
	}
	return nil
}

type UpdateResponse struct{}

type DeleteRequest struct {
	Id string `json:"id,omitempty"`
}

type DeleteResponse struct{}

type DeleteBatchRequest struct {
	Ids []string `json:"ids,omitempty"`
}

type DeleteBatchResponse struct {
	Deleted int64 `json:"deleted,omitempty"`
}
