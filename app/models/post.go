package models

// HelloWorldTitle is the title of every canned post.
const HelloWorldTitle = "Hello World!"
